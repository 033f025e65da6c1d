package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credstore-io/credstore/internal/workflows"
)

func init() {
	RootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Decrypt one secret and print its value",
	Long: `Decrypts the named secret and prints the value to stdout, with a
single trailing newline trimmed from the stored value. Nothing else is
written to stdout, so the output is safe to capture:

  DB_PASSWORD=$(credstore get db_app)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		Logger.Infof("Retrieving secret %s", name)

		result, err := workflows.Get(context.Background(), cfg, workflows.GetOptions{Name: name})
		if err != nil {
			return describeFailure(err)
		}

		Logger.Debugf("Decrypted %s", result.Path)
		fmt.Fprintln(cmd.OutOrStdout(), result.Value)
		return nil
	},
}
