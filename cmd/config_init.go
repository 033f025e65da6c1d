package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/credstore-io/credstore/internal/configs"
	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/ui"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	Long: `Writes the resolved configuration to the user config path so it can be
edited by hand. Prints the path on success.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configs.DefaultConfigPath()
		if err != nil {
			return describeFailure(err)
		}

		if !configInitForce {
			if _, err := os.Stat(path); err == nil {
				return describeFailure(fmt.Errorf("%w: config file already exists at %s", kerrors.ErrAborted, path))
			}
		}

		if err := configs.SaveTOML(path, cfg); err != nil {
			return describeFailure(fmt.Errorf("failed to write config file: %w", err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success.Sprint("✓")+" Config written to "+ui.Path.Sprint(path))
		return nil
	},
}
