package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/spendwise-dev/spendwise/internal/activity"
	"github.com/spendwise-dev/spendwise/internal/expenses"
	"github.com/spendwise-dev/spendwise/internal/model"
)

const dateFormat = "2006-01-02"

func newAddCommand(dataDir *string) *cobra.Command {
	var (
		user        string
		dateStr     string
		category    string
		amountStr   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if dateStr != "" {
				var err error
				date, err = time.Parse(dateFormat, dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", dateStr, err)
				}
			}

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}

			cfg := loadConfig(*dataDir)
			if !cfg.HasCategory(category) {
				return fmt.Errorf("unknown category %q (configured: %v)", category, cfg.Categories)
			}

			e := model.Expense{
				Username:    user,
				Date:        date,
				Category:    category,
				Amount:      amount,
				Description: description,
			}
			if err := expenses.NewService(*dataDir).Add(e); err != nil {
				return err
			}

			if err := activity.Record(*dataDir, user, activity.ActionAddExpense,
				fmt.Sprintf("%s %s", category, amount.StringFixed(2))); err != nil {
				return fmt.Errorf("recording activity: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s expense of %s for %s\n",
				category, amount.StringFixed(2), user)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "username the expense belongs to (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().StringVar(&dateStr, "date", "", "expense date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&category, "category", "", "expense category (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&amountStr, "amount", "", "expense amount, e.g. 12.50 (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&description, "description", "", "optional description")

	return cmd
}
