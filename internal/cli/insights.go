package cli

import (
	"github.com/spf13/cobra"

	"github.com/scoutapm/scout-cli/internal/api"
)

func newInsightsCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "insights <app_id>",
		Short: "Get all insights",
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
			res, err := client.GetAllInsights(cmd.Context(), id, limit)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max items per category")
	return cmd
}

func newInsightCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "insight <app_id> <insight_type>",
		Short: "Get insight by type (n_plus_one, memory_bloat, slow_query)",
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
			res, err := client.GetInsightByType(cmd.Context(), id, args[1], limit)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max items")
	return cmd
}

func addHistoryFlags(cmd *cobra.Command, h *api.HistoryQuery) {
	cmd.Flags().StringVar(&h.From, "from", "", "Start time (ISO 8601)")
	cmd.Flags().StringVar(&h.To, "to", "", "End time (ISO 8601)")
	cmd.Flags().IntVar(&h.Limit, "limit", 0, "Max items")
	cmd.Flags().Uint64Var(&h.Cursor, "pagination-cursor", 0, "Pagination cursor")
	cmd.Flags().StringVar(&h.Direction, "pagination-direction", "", "Pagination direction (asc|desc)")
	cmd.Flags().IntVar(&h.Page, "pagination-page", 0, "Pagination page")
}

func newInsightsHistoryCmd(app *App) *cobra.Command {
	var h api.HistoryQuery
	cmd := &cobra.Command{
		Use:   "insights-history <app_id>",
		Short: "Get insights history (cursor-based pagination)",
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
			res, err := client.GetInsightsHistory(cmd.Context(), id, h)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
	addHistoryFlags(cmd, &h)
	return cmd
}

func newInsightsHistoryByTypeCmd(app *App) *cobra.Command {
	var h api.HistoryQuery
	cmd := &cobra.Command{
		Use:   "insights-history-by-type <app_id> <insight_type>",
		Short: "Get insights history by type (cursor-based pagination)",
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
			res, err := client.GetInsightsHistoryByType(cmd.Context(), id, args[1], h)
			if err != nil {
				return err
			}
			return printValue(cmd, app, res)
		},
	}
	addHistoryFlags(cmd, &h)
	return cmd
}
