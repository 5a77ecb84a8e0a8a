package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/budgetagent-dev/budgetagent/internal/importer"
)

func newImportCommand(dataDir *string) *cobra.Command {
	var noDedup bool

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import bank export files",
		Long: "Import one or more bank export files (CSV, Excel or JSON). The bank\n" +
			"format is detected from the column names, transactions are deduplicated\n" +
			"against the account registry, and the registry is updated.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadProject(*dataDir)
			if err != nil {
				return err
			}

			checkDuplicates := cfg.Import.CheckDuplicates && !noDedup
			svc := importer.NewService(store, cfg.Data.Dir, cfg.Import.DefaultCurrency, logrus.StandardLogger())

			imported := 0
			for _, path := range args {
				res, err := svc.ImportAndParse(path, checkDuplicates)
				if err != nil {
					return err
				}
				switch {
				case res.SkippedFile:
					cmd.Printf("%s: already imported, skipped\n", path)
				case !checkDuplicates:
					cmd.Printf("%s: %s, %d transactions (preview, nothing saved)\n",
						path, res.Format, len(res.Transactions))
				default:
					cmd.Printf("%s: %s, account %q, %d new, %d duplicates\n",
						path, res.Format, res.Account, len(res.Transactions), res.Duplicates)
					imported++
				}
				if res.Balance != nil {
					cmd.Printf("  balance: %s %s\n", res.Balance.Amount.StringFixed(2), res.Balance.Currency)
				}
			}

			if imported > 0 {
				maybeCommit(cmd, cfg, fmt.Sprintf("import: %d file(s)", imported))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noDedup, "no-dedup", false, "parse and print without saving anything")

	return cmd
}
