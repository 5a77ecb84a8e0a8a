package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newForgetFileCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "forget-file <account> <filename>",
		Short: "Remove a file from an account's import history",
		Long: "Remove a file from an account's import history. The transactions the\n" +
			"file contributed stay registered, so re-importing it yields no new\n" +
			"transactions. Use this to re-allow a file after renaming or correcting it.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadProject(*dataDir)
			if err != nil {
				return err
			}

			removed, err := store.DeleteImportedFile(args[0], args[1])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no file %q recorded for account %q", args[1], args[0])
			}
			cmd.Printf("Forgot %s for account %q\n", args[1], args[0])
			maybeCommit(cmd, cfg, fmt.Sprintf("forget-file: %s", args[1]))
			return nil
		},
	}
}

func newDeleteAccountCommand(dataDir *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-account <name>",
		Short: "Delete an account and all its import history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting account %q discards its import history; re-run with --yes to confirm", args[0])
			}

			cfg, store, err := loadProject(*dataDir)
			if err != nil {
				return err
			}

			removed, err := store.DeleteAccount(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no account %q", args[0])
			}
			cmd.Printf("Deleted account %q\n", args[0])
			maybeCommit(cmd, cfg, fmt.Sprintf("delete-account: %s", args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	return cmd
}

func newClearCommand(dataDir *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Wipe the whole account registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("clearing discards all accounts and import history; re-run with --yes to confirm")
			}

			cfg, store, err := loadProject(*dataDir)
			if err != nil {
				return err
			}

			if err := store.ClearAll(); err != nil {
				return err
			}
			cmd.Println("Registry cleared.")
			maybeCommit(cmd, cfg, "clear: wipe registry")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	return cmd
}
