package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/polymap/internal/flagx"
)

// parseFlags overrides cfg with -d, -l, -v and -m from args. Other flags
// (such as -c) are filtered out first so they do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-v", "-m"})

	fs := flag.NewFlagSet("polymap", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the record store database")
	delay := fs.Int("l", int(cfg.LoginDelay.Milliseconds()), "simulated login delay (in milliseconds)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *delay < 0 {
		return fmt.Errorf("parse flags: negative login delay %d", *delay)
	}

	cfg.LoginDelay = time.Duration(*delay) * time.Millisecond
	return nil
}
