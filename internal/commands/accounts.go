package commands

import (
	"sort"

	"github.com/spf13/cobra"
)

func newAccountsCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List known accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadProject(*dataDir)
			if err != nil {
				return err
			}

			accounts, err := store.Load()
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				cmd.Println("No accounts yet.")
				return nil
			}

			names := make([]string, 0, len(accounts))
			for name := range accounts {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				acct := accounts[name]
				cmd.Printf("%s\n", name)
				if acct.AccountNumber != "" {
					cmd.Printf("  number:       %s\n", acct.AccountNumber)
				}
				cmd.Printf("  files:        %d\n", len(acct.ImportedFiles))
				cmd.Printf("  transactions: %d\n", len(acct.TransactionHashes))
				if acct.Balance != nil {
					cmd.Printf("  balance:      %s %s", acct.Balance.Amount.StringFixed(2), acct.Balance.Currency)
					if !acct.Balance.Date.IsZero() {
						cmd.Printf(" (as of %s)", acct.Balance.Date.Format("2006-01-02"))
					}
					cmd.Println()
				}
				if !acct.LastImportDate.IsZero() {
					cmd.Printf("  last import:  %s\n", acct.LastImportDate.Format("2006-01-02 15:04"))
				}
			}
			return nil
		},
	}
}
