package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/scoutapm/scout-cli/internal/scouturl"
)

func newParseURLCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "parse-url <url>",
		Short: "Parse a ScoutAPM web URL into its resource identifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := scouturl.Parse(args[0])
			if err != nil {
				return err
			}
			// Round-trip through JSON so plain output renders the same
			// field names as the JSON output.
			raw, err := json.Marshal(parsed)
			if err != nil {
				return err
			}
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			return printValue(cmd, app, v)
		},
	}
}
