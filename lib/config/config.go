// Package config loads the TOML configuration and applies environment
// overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/icco/sunburst/lib/sunburst"
	"github.com/icco/sunburst/lib/validation"
)

//go:embed sample_config.toml
var sampleConfig string

// SampleConfig returns the commented sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// Server contains HTTP listener settings.
type Server struct {
	Bind                string `toml:"bind"`
	Port                int    `toml:"port"`
	ReadTimeoutSeconds  int    `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `toml:"write_timeout_seconds"`
}

// Database contains storage settings.
type Database struct {
	Path    string `toml:"path"`
	LockDir string `toml:"lock_dir"`
}

// Data selects the table the database is seeded from.
type Data struct {
	File string `toml:"file"`
}

// Chart contains canvas and palette settings.
type Chart struct {
	Width       int      `toml:"width"`
	Height      int      `toml:"height"`
	CenterLabel string   `toml:"center_label"`
	Domain      []string `toml:"domain"`
	Colors      []string `toml:"colors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values.
type Config struct {
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
	Data     Data     `toml:"data"`
	Chart    Chart    `toml:"chart"`
	Logging  Logging  `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	chart := sunburst.DefaultOptions()
	return Config{
		Server: Server{
			Bind:                "0.0.0.0",
			Port:                8080,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
		},
		Database: Database{Path: "sunburst.db"},
		Chart: Chart{
			Width:       chart.Width,
			Height:      chart.Height,
			CenterLabel: chart.CenterLabel,
			Domain:      chart.Domain,
			Colors:      chart.Colors,
		},
		Logging: Logging{Format: "json", Level: "info"},
	}
}

// Load reads path when it exists, applies environment overrides and
// validates the result. A missing file is not an error; the defaults are
// used and exists is false.
func Load(path string) (cfg *Config, exists bool, err error) {
	c := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, false, fmt.Errorf("open config: %w", err)
		default:
			defer file.Close()
			exists = true
			if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&c); err != nil {
				return nil, false, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, false, err
	}

	if err := c.Validate(); err != nil {
		return nil, false, err
	}

	return &c, exists, nil
}

func (c *Config) applyEnv() error {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = p
	}
	if v := strings.TrimSpace(os.Getenv("DB_PATH")); v != "" {
		c.Database.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("SUNBURST_DATA")); v != "" {
		c.Data.File = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path must be set")
	}
	if err := validation.ValidateCanvas(c.Chart.Width, c.Chart.Height); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if len(c.Chart.Colors) == 0 {
		return errors.New("chart.colors must not be empty")
	}
	for _, color := range c.Chart.Colors {
		if _, err := sunburst.ParseHex(color); err != nil {
			return fmt.Errorf("chart.colors: %w", err)
		}
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text", "auto":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// Addr is the host:port the server listens on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Bind, strconv.Itoa(c.Server.Port))
}

// ChartOptions converts the chart section into render options.
func (c *Config) ChartOptions() sunburst.Options {
	return sunburst.Options{
		Width:       c.Chart.Width,
		Height:      c.Chart.Height,
		CenterLabel: c.Chart.CenterLabel,
		Domain:      append([]string(nil), c.Chart.Domain...),
		Colors:      append([]string(nil), c.Chart.Colors...),
	}
}
