package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type cliConfig struct {
	Mode     string
	Expr     string
	Trace    bool
	JSON     bool
	Record   bool
	Suite    string
	Output   string
	Warmup   int
	Runs     int
	Bulk     int
	LogLevel string
	Args     []string
}

func parseFlags(args []string, stderr io.Writer) (cliConfig, error) {
	cfg := cliConfig{}

	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Mode, "mode", "eval", "Run mode: eval, repl, or suite")
	fs.StringVar(&cfg.Expr, "expr", "", "Expression to evaluate (eval mode); defaults to the remaining args or stdin")
	fs.BoolVar(&cfg.Trace, "trace", false, "Print tokens and RPN before the result")
	fs.BoolVar(&cfg.JSON, "json", false, "Print results as JSON")
	fs.BoolVar(&cfg.Record, "record", false, "Record evaluations in the history store selected by STORAGE_TYPE")
	fs.StringVar(&cfg.Suite, "suite", "testdata/suites/basic.yaml", "Path to case suite YAML (suite mode)")
	fs.StringVar(&cfg.Output, "output", "", "Write the suite report as JSON to this path")
	fs.IntVar(&cfg.Warmup, "warmup", 0, "Number of warmup runs per case before measurement")
	fs.IntVar(&cfg.Runs, "runs", 1, "Number of measured runs per case")
	fs.IntVar(&cfg.Bulk, "bulk", 0, "Save suite evaluations in batches of this size when recording (0 saves one by one)")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Args = fs.Args()

	switch cfg.Mode {
	case "eval", "repl", "suite":
	default:
		return cfg, fmt.Errorf("unknown mode %q, expected eval, repl or suite", cfg.Mode)
	}
	if cfg.Runs < 1 {
		return cfg, fmt.Errorf("runs must be positive, got %d", cfg.Runs)
	}
	if cfg.Warmup < 0 {
		return cfg, fmt.Errorf("warmup must not be negative, got %d", cfg.Warmup)
	}
	return cfg, nil
}

func (c cliConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// expression returns -expr, else the remaining args joined by spaces.
// ok is false when neither was given.
func (c cliConfig) expression() (string, bool) {
	if c.Expr != "" {
		return c.Expr, true
	}
	if len(c.Args) > 0 {
		return strings.Join(c.Args, " "), true
	}
	return "", false
}
