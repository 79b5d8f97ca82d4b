package auth

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	dnsproviders "github.com/QsSama-W/aliddns/internal/dns/providers"
	"github.com/QsSama-W/aliddns/internal/services/auth"
	"github.com/QsSama-W/aliddns/internal/util"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <provider>",
		Short: "Store an AccessKey pair for a provider",
		Long: `Store an AccessKey ID and secret for a provider in the local keychain,
then verify them with a test API call.

Example:
  aliddns auth login alidns`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			provider := util.NormalizeKey(args[0])
			if provider == "" {
				fmt.Fprintln(os.Stderr, "provider is required")
				return
			}

			keyID, _ := cmd.Flags().GetString("access-key-id")
			keySecret, _ := cmd.Flags().GetString("access-key-secret")

			keyID = strings.TrimSpace(keyID)
			if keyID == "" {
				fmt.Fprint(os.Stdout, "Enter AccessKey ID: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					return
				}
				keyID = strings.TrimSpace(line)
			}
			if keyID == "" {
				fmt.Fprintln(os.Stderr, "AccessKey ID cannot be empty")
				return
			}

			keySecret = strings.TrimSpace(keySecret)
			if keySecret == "" {
				fmt.Fprint(os.Stdout, "Enter AccessKey secret: ")
				bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(os.Stdout)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					return
				}
				keySecret = strings.TrimSpace(string(bytes))
			}
			if keySecret == "" {
				fmt.Fprintln(os.Stderr, "AccessKey secret cannot be empty")
				return
			}

			store := auth.DefaultStore()
			if err := store.SetToken(provider+"-access-key-id", keyID); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			if err := store.SetToken(provider+"-access-key-secret", keySecret); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
			fmt.Fprintf(os.Stdout, "Saved credentials for provider %s\n", provider)

			// Verify the pair works before the user walks away.
			p, err := dnsproviders.Get(provider, store)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not build provider for verification: %v\n", err)
				return
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			if _, err := p.ListDomains(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: credentials saved but verification failed: %v\n", err)
				return
			}
			fmt.Fprintln(os.Stdout, "Verified: credentials are valid.")
		},
	}

	cmd.Flags().String("access-key-id", "", "AccessKey ID (optional, overrides prompt)")
	cmd.Flags().String("access-key-secret", "", "AccessKey secret (optional, overrides prompt)")

	return cmd
}
