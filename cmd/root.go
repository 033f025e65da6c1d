package cmd

import (
	"github.com/spf13/cobra"

	"github.com/credstore-io/credstore/internal/configs"
	logger "github.com/credstore-io/credstore/internal/logging"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	cfg *configs.Config

	RootCmd = &cobra.Command{
		Use:   "credstore",
		Short: "Manage the shared credential store on this host",
		Long: `credstore encrypts, retrieves, and rotates the secrets under the
credential store directory. Services read single secrets at runtime;
administrators manage the store and its shared passphrase.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing credstore command with verbose=%t, debug=%t", verbose, debug)

			loaded, err := configs.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			Logger.Debugf("Resolved store directory: %s", cfg.StoreDir)
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	cfg = nil
	resetPutCommandState()
	resetRemoveCommandState()
	resetInitCommandState()
	resetRotateCommandState()
	resetDoctorCommandState()
	resetLogCommandState()
	configShowJSON = false
	configInitForce = false
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
