package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	dnsproviders "github.com/QsSama-W/aliddns/internal/dns/providers"
	"github.com/QsSama-W/aliddns/internal/services/auth"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which providers have stored credentials",
		Long: `Show which providers have a complete AccessKey pair in the keychain.

Example:
  aliddns auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.DefaultStore()
			names := dnsproviders.List()

			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No providers registered.")
				return nil
			}

			for _, provider := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", provider, credentialState(store, provider))
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}

// credentialState reports whether a provider has both halves of its
// AccessKey pair. A partial pair is called out explicitly; it usually means
// an interrupted login.
func credentialState(store auth.Store, provider string) string {
	_, idErr := store.GetToken(provider + "-access-key-id")
	_, secretErr := store.GetToken(provider + "-access-key-secret")

	switch {
	case idErr == nil && secretErr == nil:
		return "logged in"
	case errors.Is(idErr, auth.ErrTokenNotFound) && errors.Is(secretErr, auth.ErrTokenNotFound):
		return "not logged in"
	case idErr == nil || secretErr == nil:
		return "incomplete credentials (run 'aliddns auth login " + provider + "' again)"
	default:
		return fmt.Sprintf("error (%v)", idErr)
	}
}
