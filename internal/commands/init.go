package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/budgetagent-dev/budgetagent/internal/config"
	"github.com/budgetagent-dev/budgetagent/internal/gitops"
	"github.com/budgetagent-dev/budgetagent/internal/registry"
)

func newInitCommand(dataDir *string) *cobra.Command {
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new BudgetAgent data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(*dataDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd, absDir, noGit)
		},
	}

	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git repository setup")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, noGit bool) error {
	for _, d := range []string{"logs", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(dir)
	if err := config.Save(filepath.Join(dir, config.Filename), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Empty registry so the first import has a document to update.
	store := registry.NewStore(cfg.RegistryPath())
	if err := store.ClearAll(); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}

	gitignore := "import/\n*.xlsx\n*.xls\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if noGit || !cfg.Git.AutoCommit {
		cmd.Printf("Initialized BudgetAgent data directory at %s\n", dir)
		return nil
	}

	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	hash, err := gitops.CommitAll(dir, "init: new budgetagent data directory", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	cmd.Printf("Initialized BudgetAgent data directory at %s (%s)\n", dir, hash)
	return nil
}
