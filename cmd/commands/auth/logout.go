package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/internal/services/auth"
	"github.com/QsSama-W/aliddns/internal/util"
)

func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout <provider>",
		Short: "Remove stored credentials for a provider",
		Long: `Remove a provider's AccessKey pair from the keychain.

Example:
  aliddns auth logout alidns`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := util.NormalizeKey(args[0])
			store := auth.DefaultStore()

			removed := 0
			for _, key := range []string{provider + "-access-key-id", provider + "-access-key-secret"} {
				err := store.DeleteToken(key)
				if err == nil {
					removed++
					continue
				}
				if !errors.Is(err, auth.ErrTokenNotFound) {
					return fmt.Errorf("failed to remove %s: %w", key, err)
				}
			}

			if removed == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No stored credentials for %s.\n", provider)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed credentials for %s.\n", provider)
			return nil
		},
		SilenceUsage: true,
	}
}
