package cli

import (
	"github.com/spf13/cobra"

	"github.com/scoutapm/scout-cli/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the scout version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("scout " + buildinfo.DisplayVersion())
			return nil
		},
	}
}
