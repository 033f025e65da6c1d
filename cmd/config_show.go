package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credstore-io/credstore/internal/ui"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	configCmd.AddCommand(configShowCmd)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the resolved configuration",
	Long: `Displays the configuration after merging defaults, the config file,
and CREDSTORE_* environment variables.

Examples:
  credstore config show
  credstore config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if configShowJSON {
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return describeFailure(fmt.Errorf("failed to marshal config: %w", err))
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "store_dir        %s\n", cfg.StoreDir)
		fmt.Fprintf(out, "passphrase_file  %s\n", cfg.PassphrasePath())
		fmt.Fprintf(out, "cipher           %s\n", cfg.Cipher)
		fmt.Fprintf(out, "gpg_binary       %s\n", cfg.GPGBinary)
		if cfg.Owner != "" || cfg.Group != "" {
			fmt.Fprintf(out, "ownership        %s:%s\n", cfg.Owner, cfg.Group)
		}
		if cfg.VaultConfigured() {
			fmt.Fprintf(out, "vault.file       %s\n", cfg.Vault.File)
			fmt.Fprintf(out, "vault.password   %s\n", cfg.Vault.PasswordFile)
			fmt.Fprintf(out, "vault.key        %s\n", cfg.Vault.Key)
			fmt.Fprintf(out, "vault.binary     %s\n", cfg.Vault.Binary)
		} else {
			fmt.Fprintln(out, ui.Muted.Sprint("no vault configured"))
		}
		return nil
	},
}
