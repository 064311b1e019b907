package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spendwise-dev/spendwise/internal/expenses"
)

func newListCommand(dataDir *string) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's expenses in insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := expenses.NewService(*dataDir).ListForUser(user)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No expenses recorded yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
			for _, e := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					e.Date.Format(dateFormat), e.Category, e.Amount.StringFixed(2), e.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "username to list expenses for (required)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
