package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/credstore-io/credstore/internal/audit"
	"github.com/credstore-io/credstore/internal/ui"
	"github.com/credstore-io/credstore/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logUser      string
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logUser, "user", "", "filter by username")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")

	RootCmd.AddCommand(logCmd)
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logUser = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the store's audit trail",
	Long: `Displays the audit trail of administrative operations: who ran what,
when, and which secrets were touched. Secret values never appear here.

Examples:
  credstore log                      # View full log
  credstore log -n 10                # Last 10 entries
  credstore log --reverse            # Most recent first
  credstore log --user deploy        # Filter by user
  credstore log --operation put,rm   # Filter by operation
  credstore log --since 2026-01-01   # Filter by date
  credstore log --json               # JSON output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Log(context.Background(), cfg, workflows.LogOptions{
			Limit:      logLimit,
			Reverse:    logReverse,
			User:       logUser,
			Operations: logOperation,
			Since:      logSince,
			Until:      logUntil,
		})
		if err != nil {
			return describeFailure(err)
		}

		Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
		Logger.Debugf("After filtering: %d entries", len(result.Entries))

		out := cmd.OutOrStdout()

		if len(result.Entries) == 0 {
			if result.TotalEntriesBeforeFilter == 0 {
				fmt.Fprintln(out, ui.Muted.Sprint("no audit log entries"))
			} else {
				fmt.Fprintln(out, ui.Muted.Sprint("no audit log entries match the filters"))
			}
			return nil
		}

		if logJSON {
			data, err := json.MarshalIndent(result.Entries, "", "  ")
			if err != nil {
				return describeFailure(fmt.Errorf("failed to marshal entries to JSON: %w", err))
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if logOneline {
			for _, e := range result.Entries {
				fmt.Fprintf(out, "%s %s %s %s\n",
					workflows.FormatDate(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e))
			}
			return nil
		}

		outputLogDefault(out, result.Entries)
		return nil
	},
}

func outputLogDefault(out io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		fmt.Fprintf(out, "%-19s  %-16s  %-8s  %s\n",
			workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e))
	}
}
