package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/cmd/commands/auth"
	cfgcmd "github.com/QsSama-W/aliddns/cmd/commands/config"
	"github.com/QsSama-W/aliddns/cmd/commands/dns"
	oplogcmd "github.com/QsSama-W/aliddns/cmd/commands/oplog"
	"github.com/QsSama-W/aliddns/cmd/commands/upgrade"
	dnsproviders "github.com/QsSama-W/aliddns/internal/dns/providers"
	"github.com/QsSama-W/aliddns/internal/version"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:     "aliddns",
		Short:   "Manage A/AAAA records on Alibaba Cloud DNS",
		Version: version.Current,
		Long: `aliddns keeps subdomains pointed at the right IP addresses. It derives
the record type (A or AAAA) from the address you give it, updates the
existing record in place when one exists, and creates a new record
otherwise.

Quick start:
  aliddns auth login alidns        # Store your AccessKey pair
  aliddns dns domains              # List domains in the account
  aliddns dns list example.com     # Browse records interactively
  aliddns dns set example.com www 203.0.113.5`,
	}

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(dns.NewCommand())
	cmd.AddCommand(oplogcmd.NewCommand())
	cmd.AddCommand(upgrade.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	dnsproviders.RegisterAlidns()

	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
