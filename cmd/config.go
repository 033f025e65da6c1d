package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage the credstore configuration",
}

func init() {
	RootCmd.AddCommand(configCmd)
}
