package oplog

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/internal/oplog"
)

// PruneCommand returns the "oplog prune" subcommand.
func PruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old operation entries",
		Long: `Delete operation entries older than the given age.

Examples:
  aliddns oplog prune                      # Older than 30 days
  aliddns oplog prune --older-than 168h    # Older than a week`,
		Args: cobra.NoArgs,
		Run:  runPrune,
	}

	cmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete entries older than this duration")

	return cmd
}

func runPrune(cmd *cobra.Command, args []string) {
	olderThan, _ := cmd.Flags().GetDuration("older-than")
	if olderThan <= 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: --older-than must be a positive duration")
		return
	}

	repo, err := oplog.Open()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error opening operation log: %v\n", err)
		return
	}
	defer repo.Close()

	deleted, err := repo.Prune(olderThan)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error pruning operation log: %v\n", err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entr%s older than %s.\n",
		deleted, pluralY(deleted), olderThan)
}

func pluralY(n int64) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
