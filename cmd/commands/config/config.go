package config

import (
	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/internal/config"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage aliddns configuration",
		Long: "View and modify persistent aliddns settings.\n\n" +
			"Configuration is stored at ~/.config/aliddns/config.json.\n" +
			"Credentials never live here; see 'aliddns auth'.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
