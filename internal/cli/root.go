// Package cli wires the etsytrack commands to the config, backend and dashboard.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/zavlong/etsy-task-tracker/internal/config"
	"github.com/zavlong/etsy-task-tracker/internal/domain"
)

// Version is overridden at build time with -ldflags
var Version = "dev"

// rootOptions carries the persistent flags and the resolved config
type rootOptions struct {
	cfgFile string
	week    string
	verbose bool

	fs     afero.Fs
	out    io.Writer
	errOut io.Writer

	cfg     *config.Config
	cfgUsed string
}

// NewRootCommand builds the etsytrack command tree.
// Running it without a subcommand opens the dashboard.
func NewRootCommand(fs afero.Fs, out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{fs: fs, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "etsytrack",
		Short: "Weekly task tracker for an Etsy shop",
		Long: `etsytrack keeps the recurring chores of an Etsy shop on a Monday-to-Sunday
board, together with the week's listed items, sales and revenue.

Run "etsytrack serve" to start the backend, then "etsytrack" to open the board.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, opts)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is ./.etsytrack.yaml or $HOME/.etsytrack.yaml)")
	root.PersistentFlags().StringVarP(&opts.week, "week", "w", "", "any date in the week to use, YYYY-MM-DD (default is this week)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newBoardCommand(opts),
		newServeCommand(opts),
		newWeekCommand(opts),
		newToggleCommand(opts),
		newStatCommand(opts),
		newSummaryCommand(opts),
		newTasksCommand(opts),
		newConfigCommand(opts),
		newDoctorCommand(opts),
	)
	return root
}

// Execute runs the command tree against the real filesystem and terminal
func Execute() int {
	root := NewRootCommand(afero.NewOsFs(), os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (o *rootOptions) loadConfig(cmd *cobra.Command) error {
	loader := config.NewLoader(o.fs)
	cfg, err := loader.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	o.cfg = cfg
	o.cfgUsed = loader.ConfigFileUsed()
	return nil
}

// weekRef resolves --week, defaulting to now
func (o *rootOptions) weekRef(now time.Time) (time.Time, error) {
	if o.week == "" {
		return now, nil
	}
	return domain.ParseWeekKey(o.week)
}

// stderrLogger logs as text for commands that run in the foreground
func (o *rootOptions) stderrLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(o.errOut, &slog.HandlerOptions{Level: parseLevel(o.cfg.Log.Level)}))
}

// fileLogger logs as JSON into the log directory, keeping the terminal
// free for the dashboard. The returned func closes the file.
func (o *rootOptions) fileLogger() (*slog.Logger, func(), error) {
	if err := config.EnsureLogDir(o.fs, o.cfg); err != nil {
		return nil, nil, err
	}
	path := filepath.Join(o.cfg.Log.Dir, "etsytrack.log")
	f, err := o.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(o.cfg.Log.Level)}))
	return logger, func() { _ = f.Close() }, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
