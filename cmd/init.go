package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/terminal"
	"github.com/credstore-io/credstore/internal/ui"
	"github.com/credstore-io/credstore/internal/workflows"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "replace an existing passphrase file without confirmation")

	RootCmd.AddCommand(initCmd)
}

// resetInitCommandState resets the init command's global state for testing.
func resetInitCommandState() {
	initForce = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the store directory and shared passphrase file",
	Long: `Creates the credential store directory with restrictive permissions and
writes the shared passphrase file. The passphrase comes from the vault when
one is configured, otherwise from an interactive prompt.

Replacing the passphrase of an existing store strands every ciphertext in
it; init asks before doing that.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompter := terminal.TTY{}

		// All interaction happens before the spinner starts.
		if !initForce {
			if _, err := os.Stat(cfg.PassphrasePath()); err == nil {
				confirmed, err := prompter.Confirm(
					fmt.Sprintf("Passphrase file %s already exists. Replace it? Existing secrets will need re-encryption.", cfg.PassphrasePath()), false)
				if err != nil {
					return describeFailure(err)
				}
				if !confirmed {
					return describeFailure(fmt.Errorf("%w: %s left unchanged", kerrors.ErrAborted, cfg.PassphrasePath()))
				}
			}
		}

		var passphrase []byte
		if !cfg.VaultConfigured() {
			first, err := prompter.ReadSecret("Shared passphrase: ")
			if err != nil {
				return describeFailure(err)
			}
			second, err := prompter.ReadSecret("Confirm passphrase: ")
			if err != nil {
				return describeFailure(err)
			}
			if len(first) == 0 {
				return describeFailure(kerrors.ErrEmptyValue)
			}
			if string(first) != string(second) {
				return describeFailure(fmt.Errorf("%w: passphrases do not match", kerrors.ErrEmptyValue))
			}
			passphrase = first
		}

		spinner, cleanup := startSpinner("Initializing credential store...")
		defer cleanup()

		result, err := workflows.Init(context.Background(), cfg, workflows.InitOptions{
			Passphrase: passphrase,
			Force:      true, // Confirmation already handled above.
		})
		if err != nil {
			return describeFailure(err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Credential store initialized at " + ui.Path.Sprint(result.StoreDir) + "\n" +
			ui.Info.Sprint("→") + " Passphrase written to " + ui.Path.Sprint(result.PassphrasePath) + " " +
			ui.Muted.Sprintf("source: %s", result.PassphraseSource)
		return nil
	},
}
