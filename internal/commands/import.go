package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spendwise-dev/spendwise/internal/activity"
	"github.com/spendwise-dev/spendwise/internal/expenses"
	"github.com/spendwise-dev/spendwise/internal/importer"
	"github.com/spendwise-dev/spendwise/internal/model"
)

func newImportCommand(dataDir *string) *cobra.Command {
	var (
		user     string
		category string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import expenses from a bank statement CSV",
		Long: "Import statement rows as expenses for a user. With no file argument, " +
			"every CSV in <data>/import/ is imported and moved to import/processed/.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := importer.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown statement format %q", format)
			}

			cfg := loadConfig(*dataDir)
			if !cfg.HasCategory(category) {
				return fmt.Errorf("unknown category %q (configured: %v)", category, cfg.Categories)
			}

			svc := expenses.NewService(*dataDir)

			if len(args) == 1 {
				n, err := importFile(svc, parser, args[0], user, category)
				if err != nil {
					return err
				}
				return finishImport(cmd, *dataDir, user, args[0], n)
			}

			files, err := importer.Scan(*dataDir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
				return nil
			}

			for _, f := range files {
				n, err := importFile(svc, parser, f.Path, user, category)
				if err != nil {
					return fmt.Errorf("%s: %w", f.Name, err)
				}
				if err := importer.MarkProcessed(*dataDir, f.Name); err != nil {
					return err
				}
				if err := finishImport(cmd, *dataDir, user, f.Name, n); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "username the imported expenses belong to (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&category, "category", "", "category for the imported expenses (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&format, "format", "generic", "statement format")

	return cmd
}

// importFile parses one statement file and appends its rows as expenses.
// Statement debits carry a negative sign; they import as positive spend.
func importFile(svc *expenses.Service, parser importer.Parser, path, user, category string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return 0, fmt.Errorf("parsing statement: %w", err)
	}

	for i, row := range rows {
		e := model.Expense{
			Username:    user,
			Date:        row.Date,
			Category:    category,
			Amount:      row.Amount.Abs(),
			Description: row.Description,
		}
		if err := svc.Add(e); err != nil {
			return i, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	return len(rows), nil
}

func finishImport(cmd *cobra.Command, dataDir, user, name string, n int) error {
	if err := activity.Record(dataDir, user, activity.ActionImport,
		fmt.Sprintf("%s (%d rows)", name, n)); err != nil {
		return fmt.Errorf("recording activity: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d expenses from %s\n", n, name)
	return nil
}
