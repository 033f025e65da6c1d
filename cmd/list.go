package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credstore-io/credstore/internal/ui"
	"github.com/credstore-io/credstore/internal/workflows"
)

func init() {
	RootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [pattern...]",
	Short: "List the secrets in the store",
	Long: `Lists secret names, one per line. Optional glob patterns filter the
output:

  credstore list
  credstore list 'db_*' 'ldap_*'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.List(context.Background(), cfg, workflows.ListOptions{Patterns: args})
		if err != nil {
			return describeFailure(err)
		}

		if len(result.Names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Sprintf("no secrets in %s", result.StoreDir))
			return nil
		}

		for _, name := range result.Names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
