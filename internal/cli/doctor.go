package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zavlong/etsy-task-tracker/internal/services/diagnostics"
)

func newDoctorCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the backend, database and log directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := NewDependencies(opts.cfg, opts.stderrLogger(), opts.out)
			svc := diagnostics.NewService(deps.Client, opts.fs, opts.cfg, opts.cfgUsed)

			report := svc.Collect(cmd.Context())
			fmt.Fprint(opts.out, diagnostics.Format(report))
			if report.OverallState == diagnostics.HealthCritical {
				return fmt.Errorf("%d problem(s) found", len(report.Errors))
			}
			return nil
		},
	}
}
