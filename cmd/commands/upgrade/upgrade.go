package upgrade

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/internal/version"
)

// NewCommand returns the "upgrade" Cobra command.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Check for a newer release",
		Long: `Check the release feed for a version newer than this build.

This only reports availability; install the new binary with your usual
method (package manager, go install, or a release download).`,
		Args: cobra.NoArgs,
		Run:  runUpgrade,
	}
}

func runUpgrade(cmd *cobra.Command, args []string) {
	result, err := version.NewChecker().Check(cmd.Context())
	if err != nil {
		if errors.Is(err, version.ErrTimeout) {
			fmt.Fprintln(cmd.ErrOrStderr(), "The update check timed out; try again later.")
			return
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Error checking for updates: %v\n", err)
		return
	}

	switch result.Outcome {
	case version.UpdateAvailable:
		fmt.Fprintf(cmd.OutOrStdout(), "Update available: %s (you are running %s).\n", result.Latest, result.Current)
		fmt.Fprintln(cmd.OutOrStdout(), "Get it at https://github.com/QsSama-W/aliddns/releases/latest")
	case version.UpToDate:
		fmt.Fprintf(cmd.OutOrStdout(), "You are up to date (%s).\n", result.Current)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Could not compare versions: latest release is tagged %q.\n", result.Latest)
	}
}
