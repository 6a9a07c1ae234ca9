package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/flagx"
)

// parseFlags overlays Config with command-line flags:
//
//	-a string   backend base URL
//	-d string   data directory
//	-l string   log level
//	-t int      request timeout (seconds)
//
// Only these flags are picked out of args (see flagx.FilterArgs), so
// subcommand names and their arguments pass through untouched.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-a", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("idolcode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(filtered); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
