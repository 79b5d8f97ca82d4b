package dns

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
	"github.com/QsSama-W/aliddns/internal/dns/services"
)

// domainCountWorkers bounds the concurrent per-domain record fetches for
// --counts.
const domainCountWorkers = 4

// DomainsCommand returns the "dns domains" subcommand.
func DomainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List domains in the provider account",
		Long: `List all domains registered in the DNS provider account.

With --counts, also fetch each domain's managed (A/AAAA) record count.

Example:
  aliddns dns domains
  aliddns dns domains --counts`,
		Args: cobra.NoArgs,
		Run:  runDomains,
	}

	cmd.Flags().Bool("counts", false, "Fetch the managed record count per domain")

	return cmd
}

func runDomains(cmd *cobra.Command, args []string) {
	svc, err := newDNSService(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	ctx := cmd.Context()
	domains, err := svc.ListDomains(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error listing domains: %v\n", err)
		return
	}

	if len(domains) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No domains found.")
		return
	}

	withCounts, _ := cmd.Flags().GetBool("counts")

	managed := make([]int, len(domains))
	if withCounts {
		if err := fetchManagedCounts(ctx, svc, domains, managed); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error counting records: %v\n", err)
			return
		}
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	if withCounts {
		fmt.Fprintln(w, "DOMAIN\tRECORDS\tMANAGED")
		fmt.Fprintln(w, "------\t-------\t-------")
		for i, d := range domains {
			fmt.Fprintf(w, "%s\t%d\t%d\n", d.Name, d.RecordCount, managed[i])
		}
	} else {
		fmt.Fprintln(w, "DOMAIN\tRECORDS")
		fmt.Fprintln(w, "------\t-------")
		for _, d := range domains {
			fmt.Fprintf(w, "%s\t%d\n", d.Name, d.RecordCount)
		}
	}
	w.Flush()
}

// fetchManagedCounts lists each domain's records concurrently and counts the
// A/AAAA entries.
func fetchManagedCounts(ctx context.Context, svc *services.Service, domains []domain.DomainName, managed []int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(domainCountWorkers)

	for i, d := range domains {
		g.Go(func() error {
			records, err := svc.ListRecords(gctx, d.Name)
			if err != nil {
				return fmt.Errorf("%s: %w", d.Name, err)
			}
			managed[i] = len(records)
			return nil
		})
	}
	return g.Wait()
}
