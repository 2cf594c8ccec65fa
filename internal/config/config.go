// Package config loads the kernreg configuration file
// (~/.config/kernreg/config.yaml) and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samcharles93/kernreg/internal/dump"
)

const (
	EnvDeviceTarget = "KERNREG_DEVICE_TARGET"
	EnvMode         = "KERNREG_MODE"
	EnvSecurity     = "KERNREG_SECURITY"
	EnvOpInfoDir    = "KERNREG_OP_INFO_DIR"
)

// Config mirrors the configuration file. Zero values mean "not set".
type Config struct {
	// Execution context
	DeviceTarget string `yaml:"device_target"`
	Mode         string `yaml:"mode"`
	Security     *bool  `yaml:"security"`

	// Extra op-info tables loaded after the built-in ones
	OpInfoDir string `yaml:"op_info_dir"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

// Default is the configuration used when no file exists.
func Default() Config {
	return Config{
		DeviceTarget:  dump.DeviceAscend,
		Mode:          dump.GraphMode,
		LogLevel:      "info",
		LogFormat:     "auto",
		ServerAddress: "127.0.0.1:8080",
	}
}

// Path returns the default config file location, or "" if the user config
// dir is unknown.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kernreg", "config.yaml")
}

// Load reads path over Default and applies environment overrides. A missing
// file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			var file Config
			if err := yaml.Unmarshal(data, &file); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
			cfg.merge(file)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) merge(o Config) {
	if o.DeviceTarget != "" {
		c.DeviceTarget = o.DeviceTarget
	}
	if o.Mode != "" {
		c.Mode = o.Mode
	}
	if o.Security != nil {
		c.Security = o.Security
	}
	if o.OpInfoDir != "" {
		c.OpInfoDir = o.OpInfoDir
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.ServerAddress != "" {
		c.ServerAddress = o.ServerAddress
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDeviceTarget); ok && v != "" {
		c.DeviceTarget = v
	}
	if v, ok := lookup(EnvMode); ok && v != "" {
		c.Mode = v
	}
	if v, ok := lookup(EnvOpInfoDir); ok && v != "" {
		c.OpInfoDir = v
	}
	if v, ok := lookup(EnvSecurity); ok && v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSecurity, err)
		}
		c.Security = &on
	}
	return nil
}

// Validate normalizes the mode spelling and rejects unknown modes.
func (c *Config) Validate() error {
	switch strings.ToUpper(strings.TrimSpace(c.Mode)) {
	case dump.GraphMode, "GRAPH", "0":
		c.Mode = dump.GraphMode
	case dump.PyNativeMode, "PYNATIVE", "1":
		c.Mode = dump.PyNativeMode
	default:
		return fmt.Errorf("unknown mode %q (expected GRAPH_MODE or PYNATIVE_MODE)", c.Mode)
	}
	return nil
}

// Environment returns the execution context checked by the dump controls.
func (c Config) Environment() dump.Environment {
	return dump.Environment{
		DeviceTarget: c.DeviceTarget,
		Mode:         c.Mode,
		Security:     c.Security != nil && *c.Security,
	}
}
