package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/absurdfarce/extplan/internal/meta"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the driver version the plan targets",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), meta.Version)
	},
}
