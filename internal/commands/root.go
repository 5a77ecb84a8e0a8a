// Package commands wires the CLI surface: project setup, imports, and
// registry maintenance.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/budgetagent-dev/budgetagent/internal/buildinfo"
	"github.com/budgetagent-dev/budgetagent/internal/config"
	"github.com/budgetagent-dev/budgetagent/internal/gitops"
	"github.com/budgetagent-dev/budgetagent/internal/registry"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dataDir string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "budgetagent",
		Short:   "Bank statement import and deduplication",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".", "project data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(newInitCommand(&dataDir))
	rootCmd.AddCommand(newImportCommand(&dataDir))
	rootCmd.AddCommand(newAccountsCommand(&dataDir))
	rootCmd.AddCommand(newForgetFileCommand(&dataDir))
	rootCmd.AddCommand(newDeleteAccountCommand(&dataDir))
	rootCmd.AddCommand(newClearCommand(&dataDir))

	return rootCmd
}

// loadProject resolves config and registry for the given data directory.
// A missing config file means an uninitialized directory and falls back to
// defaults, so one-off imports work without an init.
func loadProject(dataDir string) (*config.Config, *registry.Store, error) {
	absDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving data dir: %w", err)
	}

	cfgPath := filepath.Join(absDir, config.Filename)
	cfg, err := config.Load(cfgPath)
	if os.IsNotExist(err) {
		cfg = config.Default(absDir)
	} else if err != nil {
		return nil, nil, err
	}
	cfg.Data.Dir = absDir

	return cfg, registry.NewStore(cfg.RegistryPath()), nil
}

// maybeCommit versions the registry change when git integration is on and
// the data directory is a repository. A failed commit is a warning, never
// an error: the registry write already succeeded.
func maybeCommit(cmd *cobra.Command, cfg *config.Config, message string) {
	if !cfg.Git.AutoCommit || !gitops.IsRepo(cfg.Data.Dir) {
		return
	}
	hash, err := gitops.CommitPaths(cfg.Data.Dir, message, cfg.Git.AuthorName, cfg.Git.AuthorEmail,
		cfg.Data.Registry, "logs")
	if err != nil {
		logrus.WithError(err).Warn("committing registry")
		return
	}
	cmd.Printf("Committed registry update (%s)\n", hash)
}
