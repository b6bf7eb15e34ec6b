package cli

import "github.com/spf13/cobra"

func newAppsCmd(app *App) *cobra.Command {
	var activeSince string
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			apps, err := client.ListApps(cmd.Context(), activeSince)
			if err != nil {
				return err
			}
			return printValue(cmd, app, apps)
		},
	}
	cmd.Flags().StringVar(&activeSince, "active-since", "", "Only apps active since this time (ISO 8601)")
	return cmd
}

func newAppCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "app <app_id>",
		Short: "Show one application",
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
			res, err := client.GetApp(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
}
