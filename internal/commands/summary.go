package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spendwise-dev/spendwise/internal/expenses"
	"github.com/spendwise-dev/spendwise/internal/report"
)

func newSummaryCommand(dataDir *string) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a user's spending snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := expenses.NewService(*dataDir).ListForUser(user)
			if err != nil {
				return err
			}

			snap := report.Summarize(records, time.Now())
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Total spent:       %s\n", snap.Total.StringFixed(2))
			fmt.Fprintf(out, "Spent this month:  %s\n", snap.MonthTotal.StringFixed(2))
			if snap.HasAverage {
				fmt.Fprintf(out, "Avg. transaction:  %s\n", snap.Average.StringFixed(2))
			} else {
				fmt.Fprintf(out, "Avg. transaction:  %s\n", report.NA)
			}
			fmt.Fprintf(out, "Favorite category: %s\n", snap.TopCategory)

			byCategory := report.CategorySummary(records)
			if len(byCategory) > 0 {
				fmt.Fprintln(out, "\nBy category:")
				for _, ca := range byCategory {
					fmt.Fprintf(out, "  %-15s %s\n", ca.Category, ca.Amount.StringFixed(2))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "username to summarize (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
