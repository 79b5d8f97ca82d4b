package dns

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	dnstui "github.com/QsSama-W/aliddns/internal/dns/tui"
	"github.com/QsSama-W/aliddns/internal/oplog"
)

// ListCommand returns the "dns list" subcommand.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [domain]",
		Short: "Browse DNS records",
		Long: `Browse the A and AAAA records for a domain.

In a terminal this opens the interactive manager; piped output falls back
to a plain table. Without a domain argument the interactive manager starts
at the domain list.

Examples:
  aliddns dns list
  aliddns dns list example.com
  aliddns dns list example.com --type AAAA`,
		Args: cobra.MaximumNArgs(1),
		Run:  runList,
	}

	cmd.Flags().String("type", "", "Filter records by type (A or AAAA)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) {
	domainName := ""
	if len(args) > 0 {
		domainName = args[0]
	}
	typeFilter, _ := cmd.Flags().GetString("type")

	svc, err := newDNSService(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	providerName := cmd.Flag("provider").Value.String()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		repo, _ := oplog.Open()
		var logRepo oplog.Repository
		if repo != nil {
			logRepo = repo
			defer repo.Close()
		}
		if _, err := dnstui.RunDNSApp(svc, providerName, domainName, logRepo); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error running TUI: %v\n", err)
		}
		return
	}

	if domainName == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error: a domain argument is required outside a terminal")
		return
	}

	records, err := svc.ListRecords(cmd.Context(), domainName)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error listing records: %v\n", err)
		return
	}

	if typeFilter != "" {
		filtered := records[:0]
		for _, r := range records {
			if strings.EqualFold(string(r.Type), typeFilter) {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tRR\tTYPE\tVALUE\tTTL\tSTATUS")
	fmt.Fprintln(w, "--\t--\t----\t-----\t---\t------")

	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ID,
			r.RR,
			string(r.Type),
			r.Value,
			r.TTL,
			string(r.Status),
		)
	}

	w.Flush()
}
