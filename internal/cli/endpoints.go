package cli

import "github.com/spf13/cobra"

func newEndpointsCmd(app *App) *cobra.Command {
	var from, to, rng string
	cmd := &cobra.Command{
		Use:   "endpoints <app_id>",
		Short: "List endpoints",
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
			res, err := client.ListEndpoints(cmd.Context(), id, from, to, rng)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
	addRangeFlags(cmd, &from, &to, &rng)
	return cmd
}

func newEndpointMetricCmd(app *App) *cobra.Command {
	var from, to, rng string
	cmd := &cobra.Command{
		Use:   "endpoint-metric <app_id> <endpoint_id> <metric_type>",
		Short: "Get metric data for a specific endpoint",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			res, err := client.GetEndpointMetrics(cmd.Context(), id, args[1], args[2], from, to, rng)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
	addRangeFlags(cmd, &from, &to, &rng)
	return cmd
}

func newEndpointTracesCmd(app *App) *cobra.Command {
	var from, to, rng string
	cmd := &cobra.Command{
		Use:   "endpoint-traces <app_id> <endpoint_id>",
		Short: "List traces for an endpoint (max 100, within 7 days)",
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
			res, err := client.ListEndpointTraces(cmd.Context(), id, args[1], from, to, rng)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
	addRangeFlags(cmd, &from, &to, &rng)
	return cmd
}

func newTraceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trace <app_id> <trace_id>",
		Short: "Fetch a trace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			traceID, err := parseID("trace_id", args[1])
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			res, err := client.FetchTrace(cmd.Context(), appID, traceID)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
}
