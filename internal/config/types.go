package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UcsConfig is the merged CLI configuration.
type UcsConfig struct {
	Server ServerConfig `yaml:"server"`
	// Timeout is the default request timeout in seconds.
	Timeout int `yaml:"timeout,omitempty"`
	// LogFile receives debug level records when set.
	LogFile string `yaml:"logFile,omitempty"`
	// LogLevel is the level written to stderr (debug, info, warn, error).
	LogLevel string `yaml:"logLevel,omitempty"`

	// ConfigDir is the per-user directory the configuration was loaded from.
	// It also holds the persisted include and exclude filter files.
	ConfigDir string `yaml:"-"`
	// Endpoint, when set, replaces the address built from Server.
	Endpoint string `yaml:"-"`
}

// ServerConfig locates the REST server.
type ServerConfig struct {
	Address string `yaml:"address,omitempty"`
	Port    Port   `yaml:"port,omitempty"`
}

// BaseURL returns the REST server root with a trailing slash.
func (c UcsConfig) BaseURL() string {
	if c.Endpoint != "" {
		return strings.TrimRight(c.Endpoint, "/") + "/"
	}
	return fmt.Sprintf("http://%s:%d/", c.Server.Address, c.Server.Port)
}

// SystemConfig is the machine wide file installed with the CLI.
type SystemConfig struct {
	RestServerAddress string `json:"rest_server_address"`
	RestServerPort    Port   `json:"rest_server_port"`
}

// Port accepts both `4567` and `"4567"` in configuration files.
type Port int

func (p *Port) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Port(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("port must be a number or numeric string: %s", string(data))
	}
	return p.parse(s)
}

func (p *Port) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return p.parse(s)
}

func (p *Port) parse(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("invalid port %q", s)
	}
	*p = Port(n)
	return nil
}
