package dns

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
)

// errDeleteAborted is returned when the user backs out of either
// confirmation.
var errDeleteAborted = errors.New("record deletion aborted by user")

// DeleteCommand returns the "dns delete" subcommand.
func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <domain> <rr>",
		Short: "Delete a record",
		Long: `Delete a record permanently.

Interactive runs ask for confirmation twice before deleting. Pass --yes
to skip both prompts (for scripting).

Examples:
  aliddns dns delete example.com www
  aliddns dns delete example.com www --type AAAA --yes`,
		Args: cobra.ExactArgs(2),
		Run:  runDelete,
	}

	addTypeFlag(cmd)
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompts")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) {
	domainName, rr := args[0], args[1]
	typeFilter, _ := cmd.Flags().GetString("type")
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	svc, err := newDNSService(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	record, err := resolveRecord(cmd.Context(), svc, domainName, rr, typeFilter)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	if !skipConfirm {
		if err := confirmDelete(record); err != nil {
			if errors.Is(err, errDeleteAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Record deletion cancelled.")
				return
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return
		}
	}

	var remaining []domain.Record
	if skipConfirm {
		remaining, err = svc.Delete(cmd.Context(), domainName, record.ID)
	} else {
		accessible := os.Getenv("ACCESSIBLE") != ""
		var deleteErr error
		spinErr := spinner.New().
			Title("Deleting record...").
			Accessible(accessible).
			Output(cmd.ErrOrStderr()).
			Action(func() {
				remaining, deleteErr = svc.Delete(cmd.Context(), domainName, record.ID)
			}).
			Run()
		if spinErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", spinErr)
			return
		}
		err = deleteErr
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error deleting record: %v\n", err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Record %s (%s -> %s) deleted.\n", record.FullName(), record.Type, record.Value)
	fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d managed record(s).\n", domainName, len(remaining))
}

// confirmDelete asks twice, with "keep" as the default answer both times.
func confirmDelete(record *domain.Record) error {
	accessible := os.Getenv("ACCESSIBLE") != ""

	summary := fmt.Sprintf("Name:   %s\nType:   %s\nValue:  %s\nStatus: %s",
		record.FullName(), record.Type, record.Value, record.Status)

	first := false
	second := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Record details").
				Description(summary),
			huh.NewConfirm().
				Title("Delete this record?").
				Affirmative("Delete").
				Negative("Keep").
				Value(&first),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Really delete %s? This cannot be undone.", record.FullName())).
				Affirmative("Yes, delete").
				Negative("Keep").
				Value(&second),
		).WithHideFunc(func() bool { return !first }),
	).WithAccessible(accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errDeleteAborted
		}
		return err
	}

	if !first || !second {
		return errDeleteAborted
	}
	return nil
}
