// Package config loads runtime configuration for the polymap CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are decoded as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite record store (":memory:" keeps it in RAM)
//	-l int      simulated login/register delay in milliseconds
//	-v string   log level: debug, info, warn, error
//	-m string   address for the Prometheus /metrics endpoint (empty disables)
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "1500ms" or
// integer nanoseconds:
//
//	{
//	  "db_path": "polymap.db",
//	  "login_delay": "1500ms",
//	  "log_level": "info",
//	  "metrics_addr": ""
//	}
//
// This package does not read environment variables.
package config
