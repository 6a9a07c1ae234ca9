package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/idolcode/internal/client/config"
	"github.com/dmitrijs2005/idolcode/internal/flagx"
	"github.com/dmitrijs2005/idolcode/internal/logging"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// configFlags are the flags config.Load understands; every command
// accepts them.
var configFlags = []string{"-a", "-d", "-l", "-t", "-c", "-config"}

const flagsUsage = `Flags (all commands):
  -a <url>     backend base URL (IDOLCODE_BACKEND_URL)
  -d <dir>     data directory (IDOLCODE_DATA_DIR)
  -l <level>   log level: debug, info, warn, error (IDOLCODE_LOG_LEVEL)
  -t <sec>     request timeout in seconds (IDOLCODE_REQUEST_TIMEOUT)
  -c <file>    JSON config file`

// loadConfig is a test seam for config.Load.
var loadConfig = config.Load

// NewRootCommand builds the command tree. Flags are parsed by the config
// package, so cobra's own flag parsing is disabled.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:                "idolcode",
		Args:               cobra.ArbitraryArgs,
		Short:              "Train like your coding idol",
		Long:               "Idolcode compares you with a competitive programmer you look up to,\nrecommends problems to close the gap and gives you a workspace to solve them.\n\n" + flagsUsage,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			return runApp(cmd.Context(), args)
		},
	}

	root.AddCommand(
		newHealthCommand(),
		newSearchCommand(),
		newLogoutCommand(),
		newDraftsCommand(),
		newResetCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func wantsHelp(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "--help" || a == "help" {
			return true
		}
	}
	return false
}

func runApp(ctx context.Context, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger, err := logging.New(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}

	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	app.Run(ctx)
	return nil
}

// newOneShotApp builds an App for a single subcommand. Logs go to stderr.
func newOneShotApp(ctx context.Context, args []string, out io.Writer) (*App, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewConsole(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}
	app, err := NewApp(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app.out = out
	return app, nil
}

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "health",
		Short:              "Wake the backend and report whether it is reachable",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			app, err := newOneShotApp(cmd.Context(), args, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			if err := app.WakeUp(cmd.Context()); err != nil {
				return fmt.Errorf("backend at %s is not responding: %w", app.cfg.BackendURL, err)
			}
			app.success("Backend online at " + app.cfg.BackendURL)
			return nil
		},
	}
}

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "search <query>",
		Short:              "Look up coders by handle",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			query := flagx.Positional(args, configFlags)
			if len(query) == 0 {
				return fmt.Errorf("usage: idolcode search <query>")
			}
			app, err := newOneShotApp(cmd.Context(), args, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			return app.Search(cmd.Context(), []string{strings.Join(query, " ")})
		},
	}
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "logout",
		Short:              "Forget the stored user and idol",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			app, err := newOneShotApp(cmd.Context(), args, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			app.session.Restore(cmd.Context())
			return app.Logout(cmd.Context())
		},
	}
}

func newDraftsCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "drafts",
		Short:              "List problems with saved drafts",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			app, err := newOneShotApp(cmd.Context(), args, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			return app.Drafts(cmd.Context())
		},
	}
}

func newResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:                "reset",
		Short:              "Delete the stored session and every saved draft",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if wantsHelp(args) {
				return cmd.Help()
			}
			app, err := newOneShotApp(cmd.Context(), args, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			app.reader = bufio.NewReader(cmd.InOrStdin())
			return app.Reset(cmd.Context())
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "idolcode", version)
		},
	}
}
