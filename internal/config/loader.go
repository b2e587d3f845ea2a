package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"

	"ucs/pkg/logging"
)

const (
	userConfigDir  = ".ucs"
	configFileName = "config.yaml"

	// EnvConfigPath overrides the per-user configuration directory.
	EnvConfigPath = "UCS_CONFIG_PATH"
	// EnvEndpoint overrides the REST server base URL.
	EnvEndpoint = "UCS_ENDPOINT"
)

// GetDefaultConfigPath returns ~/.ucs.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// Loader builds a UcsConfig from defaults, the system file, the per-user
// config.yaml and the environment, in that order.
type Loader struct {
	// SystemConfigPath defaults to DefaultSystemConfigPath.
	SystemConfigPath string
	// ConfigDir is the per-user directory. Empty means $UCS_CONFIG_PATH or
	// ~/.ucs.
	ConfigDir string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	logger *logging.Logger
}

// NewLoader returns a Loader for configDir.
func NewLoader(configDir string, logger *logging.Logger) *Loader {
	return &Loader{
		SystemConfigPath: DefaultSystemConfigPath,
		ConfigDir:        configDir,
		LookupEnv:        os.LookupEnv,
		logger:           logger,
	}
}

// Load returns the merged configuration. Missing files leave the defaults in
// place; unreadable or malformed files are a *ConfigurationError.
func (l *Loader) Load() (UcsConfig, error) {
	config := GetDefaultConfig()

	dir, err := l.resolveConfigDir()
	if err != nil {
		return UcsConfig{}, err
	}
	config.ConfigDir = dir

	if err := l.loadSystemConfig(&config); err != nil {
		return UcsConfig{}, err
	}
	if err := l.loadUserConfig(&config); err != nil {
		return UcsConfig{}, err
	}

	if endpoint, ok := l.lookupEnv(EnvEndpoint); ok && endpoint != "" {
		l.logger.Debug("ConfigLoader", "Using endpoint %s from %s", endpoint, EnvEndpoint)
		config.Endpoint = endpoint
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeoutSeconds
	}
	return config, nil
}

func (l *Loader) resolveConfigDir() (string, error) {
	if l.ConfigDir != "" {
		return l.ConfigDir, nil
	}
	if dir, ok := l.lookupEnv(EnvConfigPath); ok && dir != "" {
		return dir, nil
	}
	return GetDefaultConfigPath()
}

func (l *Loader) lookupEnv(key string) (string, bool) {
	if l.LookupEnv == nil {
		return os.LookupEnv(key)
	}
	return l.LookupEnv(key)
}

func (l *Loader) loadSystemConfig(config *UcsConfig) error {
	path := l.SystemConfigPath
	if path == "" {
		path = DefaultSystemConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Debug("ConfigLoader", "No system config found at %s, using defaults", path)
			return nil
		}
		return newConfigurationError(path, "system", "io", err)
	}

	var system SystemConfig
	if err := k8syaml.Unmarshal(data, &system); err != nil {
		return newConfigurationError(path, "system", "parse", err,
			"The file must be JSON with rest_server_address and rest_server_port")
	}
	if system.RestServerAddress != "" {
		config.Server.Address = system.RestServerAddress
	}
	if system.RestServerPort != 0 {
		config.Server.Port = system.RestServerPort
	}
	l.logger.Debug("ConfigLoader", "Loaded system configuration from %s", path)
	return nil
}

func (l *Loader) loadUserConfig(config *UcsConfig) error {
	path := filepath.Join(config.ConfigDir, configFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", path)
			return nil
		}
		return newConfigurationError(path, "user", "io", err)
	}

	var user UcsConfig
	if err := yaml.Unmarshal(data, &user); err != nil {
		return newConfigurationError(path, "user", "parse", err,
			"Check the YAML syntax of the file")
	}
	if user.Server.Address != "" {
		config.Server.Address = user.Server.Address
	}
	if user.Server.Port != 0 {
		config.Server.Port = user.Server.Port
	}
	if user.Timeout != 0 {
		config.Timeout = user.Timeout
	}
	if user.LogFile != "" {
		config.LogFile = user.LogFile
	}
	if user.LogLevel != "" {
		config.LogLevel = user.LogLevel
	}
	l.logger.Debug("ConfigLoader", "Loaded configuration from %s", path)
	return nil
}
