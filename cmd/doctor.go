package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credstore-io/credstore/internal/ui"
	"github.com/credstore-io/credstore/internal/workflows"
)

var doctorJSON bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output as JSON")

	RootCmd.AddCommand(doctorCmd)
}

// resetDoctorCommandState resets the doctor command's global state for testing.
func resetDoctorCommandState() {
	doctorJSON = false
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of the credential store setup",
	Long: `Runs health checks against the configured store: directory and
passphrase file existence and permissions, cipher availability, vault
configuration, and the secret inventory. Exits non-zero when any check
reports an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Doctor(context.Background(), cfg, workflows.DoctorOptions{})
		if err != nil {
			return describeFailure(err)
		}

		if doctorJSON {
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return describeFailure(fmt.Errorf("failed to marshal doctor result: %w", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		} else {
			printDoctorReport(cmd, result)
		}

		if result.Summary.Errors > 0 {
			return &cliError{message: ui.Error.Sprintf("✗ %d check(s) failed", result.Summary.Errors)}
		}
		return nil
	},
}

func printDoctorReport(cmd *cobra.Command, result *workflows.DoctorResult) {
	out := cmd.OutOrStdout()

	for _, check := range result.Checks {
		var marker string
		switch check.Status {
		case workflows.CheckPass:
			marker = ui.Success.Sprint("✓")
		case workflows.CheckWarning:
			marker = ui.Warning.Sprint("!")
		default:
			marker = ui.Error.Sprint("✗")
		}
		fmt.Fprintf(out, "%s %-24s %s\n", marker, check.Name, check.Message)
	}

	fmt.Fprintf(out, "\n%d passed, %d warnings, %d errors\n",
		result.Summary.Passed, result.Summary.Warnings, result.Summary.Errors)

	if len(result.Suggestions) > 0 {
		fmt.Fprintln(out)
		for _, s := range result.Suggestions {
			fmt.Fprintln(out, ui.Info.Sprint("→")+" "+s)
		}
	}
}
