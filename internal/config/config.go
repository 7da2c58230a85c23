// Package config loads ascii-frog settings.
//
// Settings come from, in increasing priority: built-in defaults, a YAML config file,
// and ASCII_FROG_* environment variables (ASCII_FROG_SERVER_PORT overrides server.port).
// Command-line flags are applied on top by internal/cli.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/renderer"
	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "ASCII_FROG"

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Host         string        `mapstructure:"host" yaml:"host"`
	Port         int           `mapstructure:"port" yaml:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	CORSOrigin   string        `mapstructure:"cors_origin" yaml:"cors_origin"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LogConfig controls the zerolog logger
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// RenderConfig controls the default presentation
type RenderConfig struct {
	Format       string `mapstructure:"format" yaml:"format"`
	ColorProfile string `mapstructure:"color_profile" yaml:"color_profile"`
}

// CatalogConfig points at an optional YAML catalog of extra frogs
type CatalogConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// Config is the full application configuration
type Config struct {
	Server   ServerConfig          `mapstructure:"server" yaml:"server"`
	Log      LogConfig             `mapstructure:"log" yaml:"log"`
	Render   RenderConfig          `mapstructure:"render" yaml:"render"`
	Catalog  CatalogConfig         `mapstructure:"catalog" yaml:"catalog"`
	Terminal models.TerminalConfig `mapstructure:"terminal" yaml:"terminal"`

	// File is the config file that was read, if any
	File string `mapstructure:"-" yaml:"-"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "",
			Port:         3000,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
			CORSOrigin:   "*",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Render: RenderConfig{
			Format:       string(models.FormatANSI),
			ColorProfile: "ansi",
		},
		Terminal: models.DefaultTerminalConfig(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/ascii-frog/config.yaml or its platform equivalent
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "ascii-frog", "config.yaml"), nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", cfg.Server.IdleTimeout)
	v.SetDefault("server.cors_origin", cfg.Server.CORSOrigin)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)

	v.SetDefault("render.format", cfg.Render.Format)
	v.SetDefault("render.color_profile", cfg.Render.ColorProfile)

	v.SetDefault("catalog.path", cfg.Catalog.Path)

	v.SetDefault("terminal.messages.welcome", cfg.Terminal.Messages.Welcome)
	v.SetDefault("terminal.messages.prompt", cfg.Terminal.Messages.Prompt)
	v.SetDefault("terminal.theme.background", cfg.Terminal.Theme.Background)
	v.SetDefault("terminal.theme.foreground", cfg.Terminal.Theme.Foreground)
	v.SetDefault("terminal.theme.cursor", cfg.Terminal.Theme.Cursor)
	v.SetDefault("terminal.font_family", cfg.Terminal.FontFamily)
	v.SetDefault("terminal.font_size", cfg.Terminal.FontSize)
	v.SetDefault("terminal.rows", cfg.Terminal.Rows)
	v.SetDefault("terminal.cols", cfg.Terminal.Cols)
}

// Load reads the configuration. An explicit path must exist; with an empty
// path the default location is used when a file is there.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	file := path
	if file == "" {
		if defaultPath, err := DefaultPath(); err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				file = defaultPath
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return nil, errors.Wrap(err, errors.ErrCodeFileNotFound, "Config file not found").
					WithContext("path", file)
			}
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("Failed to read config file %s", file))
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "Failed to decode configuration")
	}
	cfg.File = file

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level %q is not a level", c.Log.Level))
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		problems = append(problems, fmt.Sprintf("log.format %q must be console or json", c.Log.Format))
	}
	if _, ok := models.ParseFormat(c.Render.Format); !ok {
		problems = append(problems, fmt.Sprintf("render.format %q must be plain, ansi or html", c.Render.Format))
	}
	if _, err := renderer.ParseColorProfile(c.Render.ColorProfile); err != nil {
		problems = append(problems, "render.color_profile: "+err.Error())
	}
	if c.Terminal.Rows <= 0 || c.Terminal.Cols <= 0 {
		problems = append(problems, "terminal.rows and terminal.cols must be positive")
	}

	if len(problems) > 0 {
		return errors.ValidationError("Invalid configuration").WithDetails(strings.Join(problems, "; "))
	}
	return nil
}

// Marshal encodes the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile atomically writes cfg to path, creating parent directories.
// An existing file is only replaced when force is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.AlreadyExistsError("config file", path).
				WithDetails("use --force to overwrite")
		}
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
