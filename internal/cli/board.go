package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zavlong/etsy-task-tracker/internal/app"
	"github.com/zavlong/etsy-task-tracker/internal/services/network"
)

func newBoardCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the weekly dashboard (default)",
		Long: `Open the interactive weekly board.

When stdout is not a terminal the week is printed as a table instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, opts)
		},
	}
}

func runBoard(cmd *cobra.Command, opts *rootOptions) error {
	if f, ok := opts.out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		deps := NewDependencies(opts.cfg, opts.stderrLogger(), opts.out)
		week, err := opts.weekRef(deps.Now())
		if err != nil {
			return err
		}
		return WeekCommand(cmd.Context(), deps, week, OutputTable)
	}

	logger, closeLog, err := opts.fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	deps := NewDependencies(opts.cfg, logger, opts.out)
	week, err := opts.weekRef(deps.Now())
	if err != nil {
		return err
	}

	logger.Info("starting dashboard", "backend", deps.Client.BaseURL(), "week", week.Format("2006-01-02"))
	model := app.New(app.Options{
		Catalog:        deps.Catalog,
		Backend:        deps.Client,
		Health:         network.NewStatusChecker(deps.Client, opts.cfg.Client.Timeout()),
		Logger:         logger,
		Week:           week,
		Timeout:        opts.cfg.Client.Timeout(),
		HealthInterval: opts.cfg.Client.HealthInterval(),
		Now:            deps.Now,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
