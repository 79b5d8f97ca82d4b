package dns

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/internal/dns/services"
)

// SetCommand returns the "dns set" subcommand.
func SetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <domain> <rr> <ip>",
		Short: "Point a subdomain at an IP address",
		Long: `Point a subdomain at an IPv4 or IPv6 address.

The record type is derived from the address: IPv4 addresses produce an A
record, IPv6 addresses an AAAA record. If a record of that type already
exists for the name it is updated in place; otherwise a new record is
created. Use @ as the rr to target the apex.

Examples:
  aliddns dns set example.com www 203.0.113.5
  aliddns dns set example.com @ 2001:db8::1`,
		Args: cobra.ExactArgs(3),
		Run:  runSet,
	}
}

func runSet(cmd *cobra.Command, args []string) {
	domainName, rr, ip := args[0], args[1], args[2]

	svc, err := newDNSService(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	result, err := svc.Reconcile(cmd.Context(), domainName, rr, ip)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAddress) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error setting record: %v\n", err)
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Message())
	fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d managed record(s).\n", domainName, len(result.Records))
}
