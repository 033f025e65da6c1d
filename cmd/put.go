package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/store"
	"github.com/credstore-io/credstore/internal/terminal"
	"github.com/credstore-io/credstore/internal/ui"
	"github.com/credstore-io/credstore/internal/workflows"
)

var (
	putForce bool
	putStdin bool
)

func init() {
	putCmd.Flags().BoolVarP(&putForce, "force", "f", false, "overwrite an existing secret without confirmation")
	putCmd.Flags().BoolVar(&putStdin, "stdin", false, "read the value from stdin instead of prompting")

	RootCmd.AddCommand(putCmd)
}

// resetPutCommandState resets the put command's global state for testing.
func resetPutCommandState() {
	putForce = false
	putStdin = false
}

var putCmd = &cobra.Command{
	Use:   "put <name>",
	Short: "Encrypt one secret into the store",
	Long: `Encrypts a value under the store's shared passphrase and writes it as
<name>_secret.txt.gpg with restrictive permissions. The value is read from
a hidden prompt, or from stdin with --stdin:

  credstore put db_app
  openssl rand -base64 32 | credstore put db_app --stdin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		prompter := terminal.TTY{}

		// All interaction happens before the spinner starts, so prompts and
		// the spinner never fight over the terminal.
		if !putForce {
			exists, err := store.New(cfg).Exists(name)
			if err != nil {
				return describeFailure(err)
			}
			if exists {
				confirmed, err := prompter.Confirm(fmt.Sprintf("Secret %q already exists. Overwrite?", name), false)
				if err != nil {
					return describeFailure(err)
				}
				if !confirmed {
					return describeFailure(fmt.Errorf("%w: %s left unchanged", kerrors.ErrAborted, name))
				}
			}
		}

		var value []byte
		if putStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return describeFailure(fmt.Errorf("reading value from stdin: %w", err))
			}
			value = data
		} else {
			secret, err := prompter.ReadSecret(fmt.Sprintf("Value for %s: ", name))
			if err != nil {
				return describeFailure(err)
			}
			value = secret
		}

		spinner, cleanup := startSpinner("Encrypting secret...")
		defer cleanup()

		result, err := workflows.Put(context.Background(), cfg, workflows.PutOptions{
			Name:  name,
			Value: value,
			Force: true, // Confirmation already handled above.
		})
		if err != nil {
			return describeFailure(err)
		}

		verb := "created"
		if result.Overwritten {
			verb = "replaced"
		}
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Secret " + ui.Highlight.Sprint(name) + " " + verb + "\n" +
			ui.Info.Sprint("→") + " " + ui.Path.Sprint(result.Path) + " " +
			ui.Muted.Sprintf("passphrase from %s", result.PassphraseSource)
		return nil
	},
}
