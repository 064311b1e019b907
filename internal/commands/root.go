package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spendwise-dev/spendwise/internal/buildinfo"
	"github.com/spendwise-dev/spendwise/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dataDir string

	rootCmd := &cobra.Command{
		Use:     "spendwise",
		Short:   "Personal pocket expense tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory holding the CSV tables")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRegisterCommand(&dataDir))
	rootCmd.AddCommand(newAddCommand(&dataDir))
	rootCmd.AddCommand(newListCommand(&dataDir))
	rootCmd.AddCommand(newSummaryCommand(&dataDir))
	rootCmd.AddCommand(newImportCommand(&dataDir))
	rootCmd.AddCommand(newServeCommand(&dataDir))

	return rootCmd
}

// loadConfig reads <dataDir>/spendwise.yaml, falling back to defaults when
// the file is missing.
func loadConfig(dataDir string) *config.Config {
	cfg, err := config.Load(filepath.Join(dataDir, config.FileName))
	if err != nil {
		return config.Default()
	}
	return cfg
}
