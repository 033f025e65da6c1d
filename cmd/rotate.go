package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/terminal"
	"github.com/credstore-io/credstore/internal/ui"
	"github.com/credstore-io/credstore/internal/workflows"
)

var rotateYes bool

func init() {
	rotateCmd.Flags().BoolVarP(&rotateYes, "yes", "y", false, "rotate without confirmation")

	RootCmd.AddCommand(rotateCmd)
}

// resetRotateCommandState resets the rotate command's global state for testing.
func resetRotateCommandState() {
	rotateYes = false
}

var rotateCmd = &cobra.Command{
	Use:   "rotate [pattern...]",
	Short: "Re-encrypt every secret under a new shared passphrase",
	Long: `Decrypts every secret with the current passphrase, re-encrypts under a
new one, and replaces the passphrase file. Nothing is written until every
secret proved decryptable, so a failed rotation leaves the store untouched.

With patterns, only matching secrets are re-encrypted and the passphrase
file is left alone. When a vault is configured the new passphrase is read
from it; update the vault first, then run rotate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompter := terminal.TTY{}

		// All interaction happens before the spinner starts.
		if !rotateYes {
			confirmed, err := prompter.Confirm("Rotate the shared passphrase for every matching secret?", false)
			if err != nil {
				return describeFailure(err)
			}
			if !confirmed {
				return describeFailure(fmt.Errorf("%w: store left unchanged", kerrors.ErrAborted))
			}
		}

		var newPassphrase []byte
		if !cfg.VaultConfigured() {
			first, err := prompter.ReadSecret("New shared passphrase: ")
			if err != nil {
				return describeFailure(err)
			}
			second, err := prompter.ReadSecret("Confirm new passphrase: ")
			if err != nil {
				return describeFailure(err)
			}
			if len(first) == 0 {
				return describeFailure(kerrors.ErrEmptyValue)
			}
			if string(first) != string(second) {
				return describeFailure(fmt.Errorf("%w: passphrases do not match", kerrors.ErrEmptyValue))
			}
			newPassphrase = first
		}

		spinner, cleanup := startSpinner("Rotating secrets...")
		defer cleanup()

		result, err := workflows.Rotate(context.Background(), cfg, workflows.RotateOptions{
			NewPassphrase: newPassphrase,
			Patterns:      args,
		})
		if err != nil {
			return describeFailure(err)
		}

		msg := ui.Success.Sprintf("✓") + fmt.Sprintf(" Re-encrypted %d secret(s) ", len(result.Rotated)) +
			ui.Muted.Sprintf("passphrase from %s", result.PassphraseSource)
		if result.PassphraseReplaced {
			msg += "\n" + ui.Info.Sprint("→") + " Passphrase file replaced at " + ui.Path.Sprint(cfg.PassphrasePath())
		} else {
			msg += "\n" + ui.Warning.Sprint("!") + " Partial rotation: passphrase file left unchanged"
		}
		spinner.FinalMSG = msg
		return nil
	},
}
