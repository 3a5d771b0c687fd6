// Package config loads the binding, logging and server settings shared by the
// CLI and the demo server. Files may be JSON or YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-fieldgroup/pkg/toggle"
)

// EnvPrefix prefixes every environment override. Nested keys join with an
// underscore, so FIELDGROUP_BINDING_MUTED overrides binding.muted.
const EnvPrefix = "FIELDGROUP"

// Environment overrides.
const (
	EnvLogLevel = "FIELDGROUP_LOG_LEVEL"
	EnvAddr     = "FIELDGROUP_ADDR"
)

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
	defaultAddr      = ":8080"
)

// ErrEmptyFile signals a config file without content.
var ErrEmptyFile = errors.New("config: file is empty")

// Config is the root document.
type Config struct {
	Binding toggle.Binding `json:"binding" yaml:"binding" mapstructure:"binding"`
	Log     Log            `json:"log" yaml:"log" mapstructure:"log"`
	Server  Server         `json:"server" yaml:"server" mapstructure:"server"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Server configures the demo HTTP server.
type Server struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Default returns a config with every default applied.
func Default() Config {
	return Config{
		Binding: toggle.DefaultBinding(),
		Log:     Log{Level: defaultLogLevel, Format: defaultLogFormat},
		Server:  Server{Addr: defaultAddr},
	}
}

// LoadFS reads and normalizes the named file from fsys.
func LoadFS(fsys fs.FS, name string) (Config, error) {
	if fsys == nil {
		return Config{}, errors.New("config: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// LoadFile reads a config from disk. An empty path returns the defaults with
// environment overrides applied.
func LoadFile(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return load(newViper(), "defaults")
	}
	return LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

// Parse decodes JSON or YAML, then applies defaults, environment overrides
// and validation.
func Parse(data []byte, source string) (Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrEmptyFile, source)
	}

	v := newViper()
	v.SetConfigType(configType(source))
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", source, err)
	}
	return load(v, source)
}

// newViper returns an instance with every key defaulted, so AutomaticEnv can
// reach keys a file leaves out.
func newViper() *viper.Viper {
	v := viper.New()
	defaults := Default()
	v.SetDefault("binding.control", defaults.Binding.ControlID)
	v.SetDefault("binding.fields", defaults.Binding.FieldClass)
	v.SetDefault("binding.muted", defaults.Binding.MutedClass)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("server.addr", defaults.Server.Addr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Short alias kept for the demo server.
	_ = v.BindEnv("server.addr", EnvPrefix+"_SERVER_ADDR", EnvAddr)
	return v
}

func load(v *viper.Viper, source string) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", source, err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

func configType(source string) string {
	if strings.EqualFold(filepath.Ext(source), ".json") {
		return "json"
	}
	// YAML is a superset of JSON, so unknown extensions decode either way.
	return "yaml"
}

func (c *Config) normalize() {
	c.Binding = c.Binding.Normalize()
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
}

// Validate rejects unsupported log settings and malformed bindings.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return c.Binding.Validate()
}
