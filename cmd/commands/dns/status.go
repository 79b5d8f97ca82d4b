package dns

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
)

// EnableCommand returns the "dns enable" subcommand.
func EnableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable <domain> <rr>",
		Short: "Enable a paused record",
		Long: `Re-enable a record so it resolves again.

Example:
  aliddns dns enable example.com www`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runSetStatus(cmd, args, domain.StatusEnable)
		},
	}
	addTypeFlag(cmd)
	return cmd
}

// DisableCommand returns the "dns disable" subcommand.
func DisableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disable <domain> <rr>",
		Short: "Pause a record without deleting it",
		Long: `Pause a record. It stops resolving but keeps its ID and value,
so it can be re-enabled later.

Example:
  aliddns dns disable example.com www`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runSetStatus(cmd, args, domain.StatusDisable)
		},
	}
	addTypeFlag(cmd)
	return cmd
}

func runSetStatus(cmd *cobra.Command, args []string, status domain.RecordStatus) {
	domainName, rr := args[0], args[1]
	typeFilter, _ := cmd.Flags().GetString("type")

	svc, err := newDNSService(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	record, err := resolveRecord(cmd.Context(), svc, domainName, rr, typeFilter)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	if record.Status == status {
		fmt.Fprintf(cmd.OutOrStdout(), "Record %s (%s) is already %s.\n", record.FullName(), record.Type, status)
		return
	}

	if _, err := svc.SetStatus(cmd.Context(), domainName, record.ID, status); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error updating record status: %v\n", err)
		return
	}

	verb := "enabled"
	if status == domain.StatusDisable {
		verb = "disabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Record %s (%s) %s.\n", record.FullName(), record.Type, verb)
}
