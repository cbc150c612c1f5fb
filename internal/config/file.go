package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/polymap/internal/flagx"
	"github.com/dmitrijs2005/polymap/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the DTO decoded from a config file. Pointer fields tell
// "absent" apart from "set to the zero value", so a file only overrides the
// keys it names.
type fileConfig struct {
	DBPath      *string         `json:"db_path" yaml:"db_path"`
	LoginDelay  *timex.Duration `json:"login_delay" yaml:"login_delay"`
	LogLevel    *string         `json:"log_level" yaml:"log_level"`
	MetricsAddr *string         `json:"metrics_addr" yaml:"metrics_addr"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	if fc.DBPath != nil {
		cfg.DBPath = *fc.DBPath
	}
	if fc.LoginDelay != nil {
		cfg.LoginDelay = fc.LoginDelay.Duration
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.MetricsAddr != nil {
		cfg.MetricsAddr = *fc.MetricsAddr
	}
	return nil
}
