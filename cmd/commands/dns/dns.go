package dns

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/internal/config"
	dnsproviders "github.com/QsSama-W/aliddns/internal/dns/providers"
	"github.com/QsSama-W/aliddns/internal/dns/services"
	"github.com/QsSama-W/aliddns/internal/oplog"
	"github.com/QsSama-W/aliddns/internal/services/auth"
	"github.com/QsSama-W/aliddns/internal/swrcache"
)

// defaultProvider is used when neither the --provider flag nor the
// dns-provider config key names one.
const defaultProvider = "alidns"

// NewCommand returns the top-level "dns" Cobra command with all subcommands
// attached.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "dns",
		Short:             "Manage DNS records",
		Long:              `Point subdomains at IP addresses, toggle records on and off, and delete them.`,
		PersistentPreRunE: resolveDNSProvider,
	}

	cmd.AddCommand(DomainsCommand())
	cmd.AddCommand(ListCommand())
	cmd.AddCommand(SetCommand())
	cmd.AddCommand(EnableCommand())
	cmd.AddCommand(DisableCommand())
	cmd.AddCommand(DeleteCommand())

	cmd.PersistentFlags().String("provider", "", "DNS provider to use (overrides the dns-provider config key)")

	return cmd
}

// resolveDNSProvider ensures the --provider flag has a value, falling back to
// the dns-provider config key, then to the built-in default.
func resolveDNSProvider(cmd *cobra.Command, args []string) error {
	if cmd.Flag("provider").Changed {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	name := cfg.DNSProvider
	if name == "" {
		name = defaultProvider
	}
	if err := cmd.Flag("provider").Value.Set(name); err != nil {
		return fmt.Errorf("failed to set provider flag: %w", err)
	}
	return nil
}

func newDNSService(cmd *cobra.Command) (*services.Service, error) {
	providerName := cmd.Flag("provider").Value.String()
	provider, err := dnsproviders.Get(providerName, auth.DefaultStore())
	if err != nil {
		return nil, err
	}

	opts := []services.Option{}
	if os.Getenv("ALIDDNS_DISABLE_DNS_CACHE") != "1" {
		opts = append(opts, services.WithCache(swrcache.NewDefault()))
	}
	if repo := openOpLog(cmd); repo != nil {
		opts = append(opts, services.WithOpLog(repo))
	}

	return services.New(provider, opts...), nil
}

// openOpLog opens the local operation log. Failure is not fatal: the log is
// an audit trail, not a dependency of the operations it records.
func openOpLog(cmd *cobra.Command) oplog.Repository {
	repo, err := oplog.Open()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: operation log unavailable: %v\n", err)
		return nil
	}
	return repo
}
