package cli

import "github.com/spf13/cobra"

func newErrorsCmd(app *App) *cobra.Command {
	var from, to, endpoint string
	cmd := &cobra.Command{
		Use:   "errors <app_id>",
		Short: "List error groups",
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
			res, err := client.ListErrorGroups(cmd.Context(), id, from, to, endpoint)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Start time (ISO 8601)")
	cmd.Flags().StringVar(&to, "to", "", "End time (ISO 8601)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Filter by endpoint name")
	return cmd
}

func newErrorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "error <app_id> <error_id>",
		Short: "Show one error group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			errorID, err := parseID("error_id", args[1])
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			res, err := client.GetErrorGroup(cmd.Context(), appID, errorID)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
}

func newErrorGroupErrorsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "error-group-errors <app_id> <error_id>",
		Short: "List individual errors in an error group (max 100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := parseAppID(args[0])
			if err != nil {
				return err
			}
			errorID, err := parseID("error_id", args[1])
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			res, err := client.GetErrorGroupErrors(cmd.Context(), appID, errorID)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
}
