package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/store"
	"github.com/credstore-io/credstore/internal/terminal"
	"github.com/credstore-io/credstore/internal/ui"
	"github.com/credstore-io/credstore/internal/workflows"
)

var removeForce bool

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "delete without confirmation")

	RootCmd.AddCommand(removeCmd)
}

// resetRemoveCommandState resets the rm command's global state for testing.
func resetRemoveCommandState() {
	removeForce = false
}

var removeCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Delete one secret from the store",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if !removeForce {
			exists, err := store.New(cfg).Exists(name)
			if err != nil {
				return describeFailure(err)
			}
			if !exists {
				return describeFailure(fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, name))
			}
			confirmed, err := terminal.TTY{}.Confirm(fmt.Sprintf("Remove secret %q?", name), false)
			if err != nil {
				return describeFailure(err)
			}
			if !confirmed {
				return describeFailure(fmt.Errorf("%w: %s left unchanged", kerrors.ErrAborted, name))
			}
		}

		result, err := workflows.Remove(context.Background(), cfg, workflows.RemoveOptions{
			Name:  name,
			Force: true, // Confirmation already handled above.
		})
		if err != nil {
			return describeFailure(err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Secret "+ui.Highlight.Sprint(name)+" removed "+
			ui.Muted.Sprint(result.Path))
		return nil
	},
}
