package cli

import (
	"github.com/spf13/cobra"
)

func newWeekCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Print a week's checklist, stats and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := NewDependencies(opts.cfg, opts.stderrLogger(), opts.out)
			week, err := opts.weekRef(deps.Now())
			if err != nil {
				return err
			}
			return WeekCommand(cmd.Context(), deps, week, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "output format: table, json or yaml")
	return cmd
}

func newToggleCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle TASK DAY",
		Short: "Flip a task's completion for one day",
		Long: `Flip a task's completion for one day of the week.

DAY is a column index (0 = Monday) or a weekday name such as "tue".`,
		Example: `  etsytrack toggle orders 2
  etsytrack toggle sourcing thu --week 2024-01-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := NewDependencies(opts.cfg, opts.stderrLogger(), opts.out)
			week, err := opts.weekRef(deps.Now())
			if err != nil {
				return err
			}
			return ToggleCommand(cmd.Context(), deps, week, args[0], args[1])
		},
	}
}

func newStatCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stat FIELD VALUE",
		Short: "Set listed, sales or revenue for the week",
		Long: `Set one of the week's counters: listed, sales or revenue.

VALUE is read up to its first non-digit; anything unparseable or negative
is stored as 0.`,
		Example:   `  etsytrack stat revenue 1250`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"listed", "sales", "revenue"},
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := NewDependencies(opts.cfg, opts.stderrLogger(), opts.out)
			week, err := opts.weekRef(deps.Now())
			if err != nil {
				return err
			}
			return StatCommand(cmd.Context(), deps, week, args[0], args[1])
		},
	}
}

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print totals across every tracked week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps := NewDependencies(opts.cfg, opts.stderrLogger(), opts.out)
			return SummaryCommand(cmd.Context(), deps, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "output format: table, json or yaml")
	return cmd
}

func newTasksCommand(opts *rootOptions) *cobra.Command {
	var (
		t   TasksOptions
		day string
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the task catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t.Day = -1
			if day != "" {
				d, err := ParseDay(day)
				if err != nil {
					return err
				}
				t.Day = d
			}
			deps := NewDependencies(opts.cfg, opts.stderrLogger(), opts.out)
			return TasksCommand(deps, t)
		},
	}

	cmd.Flags().StringVarP(&day, "day", "d", "", "only tasks due on this day (0-6 or mon..sun)")
	cmd.Flags().StringSliceVarP(&t.Priority, "priority", "p", nil, "only these priorities (high, medium, low)")
	cmd.Flags().StringSliceVarP(&t.Frequency, "frequency", "f", nil, "only these frequencies (daily, weekly)")
	cmd.Flags().StringVarP(&t.Search, "search", "s", "", "only tasks whose name or ID contains this text")
	cmd.Flags().StringVar(&t.Sort, "sort", "catalog", "order by catalog, priority, time or name")
	cmd.Flags().BoolVar(&t.Desc, "desc", false, "reverse the order")
	return cmd
}
