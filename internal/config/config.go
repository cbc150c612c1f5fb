package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the polymap CLI.
type Config struct {
	DBPath      string
	LoginDelay  time.Duration
	LogLevel    string
	MetricsAddr string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "polymap.db"
	c.LoginDelay = 1500 * time.Millisecond
	c.LogLevel = "info"
	c.MetricsAddr = ""
}

// LoadConfig builds a Config from defaults, then the optional config file,
// then flags found in os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load is LoadConfig over an explicit argument list (program name excluded).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
