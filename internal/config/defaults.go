package config

const (
	// DefaultServerAddress is used when no configuration file names a server.
	DefaultServerAddress = "localhost"
	// DefaultServerPort is the REST server's default port.
	DefaultServerPort = 4567
	// DefaultTimeoutSeconds is the request timeout when none is configured.
	DefaultTimeoutSeconds = 900

	// DefaultSystemConfigPath is the machine wide configuration file.
	DefaultSystemConfigPath = "/opt/ucs/etc/cli_config.json"
)

// GetDefaultConfig returns the configuration used when no file overrides it.
func GetDefaultConfig() UcsConfig {
	return UcsConfig{
		Server: ServerConfig{
			Address: DefaultServerAddress,
			Port:    DefaultServerPort,
		},
		Timeout:  DefaultTimeoutSeconds,
		LogLevel: "warn",
	}
}
