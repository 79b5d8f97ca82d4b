package oplog

import (
	"github.com/spf13/cobra"
)

// NewCommand returns the top-level "oplog" Cobra command with all
// subcommands attached.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oplog",
		Short: "Inspect the local operation history",
		Long: `Inspect the local history of DNS operations.

Every record change is logged locally with its outcome. The log is an
audit trail only: operations succeed or fail regardless of it.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
