package oplog

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/internal/oplog"
)

// ListCommand returns the "oplog list" subcommand.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent operations",
		Long: `Show the most recent DNS operations, newest first.

Examples:
  aliddns oplog list
  aliddns oplog list --operation delete
  aliddns oplog list --limit 50`,
		Args: cobra.NoArgs,
		Run:  runList,
	}

	cmd.Flags().String("operation", "", "Only show entries for this operation (reconcile, set-status, delete)")
	cmd.Flags().Int("limit", oplog.DisplayLimit, "Maximum number of entries to show")

	return cmd
}

func runList(cmd *cobra.Command, args []string) {
	repo, err := oplog.Open()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error opening operation log: %v\n", err)
		return
	}
	defer repo.Close()

	operation, _ := cmd.Flags().GetString("operation")
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = oplog.DisplayLimit
	}

	var entries []oplog.Entry
	if operation != "" {
		entries, err = repo.ListByOperation(operation, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error reading operation log: %v\n", err)
		return
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No operations recorded yet.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "WHEN\tOPERATION\tDOMAIN\tOUTCOME\tDETAIL")
	fmt.Fprintln(w, "----\t---------\t------\t-------\t------")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime),
			e.Operation,
			e.Domain,
			e.Outcome,
			e.Detail,
		)
	}

	w.Flush()
}
