// Package cli wires the cobra command tree: batch query subcommands plus
// the interactive dashboard when no subcommand is given.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/scoutapm/scout-cli/internal/api"
	"github.com/scoutapm/scout-cli/internal/config"
	"github.com/scoutapm/scout-cli/internal/dash"
	"github.com/scoutapm/scout-cli/internal/format"
	"github.com/scoutapm/scout-cli/internal/secret"
	"github.com/scoutapm/scout-cli/internal/tui"
)

type App struct {
	Output     string
	AppArg     string
	Tab        string
	Refresh    int
	UTC        bool
	APIURL     string
	ConfigPath string

	client *api.Client
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scout",
		Short:         "ScoutAPM CLI for querying apps, endpoints, traces, and metrics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.applyConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive dashboard.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&app.Output, "output", "o", "plain", "Output format (plain|json), ignored for the dashboard")
	cmd.PersistentFlags().StringVar(&app.AppArg, "app", "", "Start the dashboard with this app selected (id or name)")
	cmd.PersistentFlags().StringVar(&app.Tab, "tab", "endpoints", "Initial dashboard tab (endpoints|insights|metrics|errors)")
	cmd.PersistentFlags().IntVar(&app.Refresh, "refresh", 0, "Dashboard auto-refresh interval in seconds (0 = off)")
	cmd.PersistentFlags().BoolVar(&app.UTC, "utc", false, "Show timestamps in UTC instead of local time")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", envOr("SCOUT_API_URL", ""), "API base URL")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default ~/.config/scout/config.toml)")

	cmd.AddCommand(newAppsCmd(app))
	cmd.AddCommand(newAppCmd(app))
	cmd.AddCommand(newMetricsCmd(app))
	cmd.AddCommand(newMetricCmd(app))
	cmd.AddCommand(newEndpointsCmd(app))
	cmd.AddCommand(newEndpointMetricCmd(app))
	cmd.AddCommand(newEndpointTracesCmd(app))
	cmd.AddCommand(newTraceCmd(app))
	cmd.AddCommand(newErrorsCmd(app))
	cmd.AddCommand(newErrorCmd(app))
	cmd.AddCommand(newErrorGroupErrorsCmd(app))
	cmd.AddCommand(newInsightsCmd(app))
	cmd.AddCommand(newInsightCmd(app))
	cmd.AddCommand(newInsightsHistoryCmd(app))
	cmd.AddCommand(newInsightsHistoryByTypeCmd(app))
	cmd.AddCommand(newParseURLCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// applyConfig layers the config file under any flags the user did not set.
func (a *App) applyConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	if !flags.Changed("output") && cfg.Output != "" {
		a.Output = cfg.Output
	}
	if !flags.Changed("tab") && cfg.Tab != "" {
		a.Tab = cfg.Tab
	}
	if !flags.Changed("refresh") && cfg.RefreshSecs > 0 {
		a.Refresh = cfg.RefreshSecs
	}
	if !flags.Changed("utc") {
		a.UTC = cfg.UTC
	}
	if !flags.Changed("api-url") && a.APIURL == "" {
		a.APIURL = cfg.APIURL
	}
	return nil
}

// Client resolves the API key on first use and reuses the client after.
func (a *App) Client() (*api.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	key, _, err := secret.APIKey()
	if err != nil {
		return nil, err
	}
	c := api.NewClient(key)
	if a.APIURL != "" {
		c.BaseURL = a.APIURL
	}
	a.client = c
	return c, nil
}

func runTUI(app *App) error {
	client, err := app.Client()
	if err != nil {
		return err
	}
	ctx := context.Background()
	rawApps, err := client.ListApps(ctx, "")
	if err != nil {
		// An auth failure on the initial app list is fatal for the session.
		return err
	}
	apps := dash.ApplicationsFrom(rawApps)
	engine := dash.NewEngine(api.Gateway{Client: client}, apps, dash.Options{
		App:          app.AppArg,
		View:         dash.ParseView(app.Tab),
		RefreshEvery: time.Duration(app.Refresh) * time.Second,
		UseUTC:       app.UTC,
	}, time.Now())
	return tui.Run(engine)
}

// printValue renders a batch result in the selected output format.
func printValue(cmd *cobra.Command, app *App, v any) error {
	out, err := format.ParseOutput(app.Output)
	if err != nil {
		return err
	}
	switch out {
	case format.JSON:
		s, err := format.FormatJSON(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), format.FormatPlain(v))
	}
	return nil
}

func parseAppID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid app_id %q", arg)
	}
	return id, nil
}

func parseID(name, arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, arg)
	}
	return id, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// Main is the process entry point; it prints failures to stderr and maps
// them to the exit code.
func Main() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorMessage(err))
		return 1
	}
	return 0
}

func errorMessage(err error) string {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return err.Error()
}
