package cli

import "github.com/spf13/cobra"

func newMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <app_id>",
		Short: "List available metric types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			list, err := client.ListMetrics(cmd.Context(), id)
			if err != nil {
				return err
			}
			vals := make([]any, len(list))
			for i, s := range list {
				vals[i] = s
			}
			return printValue(cmd, app, vals)
		},
	}
}

func newMetricCmd(app *App) *cobra.Command {
	var from, to, rng string
	cmd := &cobra.Command{
		Use:   "metric <app_id> <metric_type>",
		Short: "Get time-series metric data",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			res, err := client.GetMetric(cmd.Context(), id, args[1], from, to, rng)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
	addRangeFlags(cmd, &from, &to, &rng)
	return cmd
}

func addRangeFlags(cmd *cobra.Command, from, to, rng *string) {
	cmd.Flags().StringVar(from, "from", "", "Start time (ISO 8601)")
	cmd.Flags().StringVar(to, "to", "", "End time (ISO 8601)")
	cmd.Flags().StringVar(rng, "range", "", "Trailing window, e.g. 30min, 2hr, 7days")
}
