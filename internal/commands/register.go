package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spendwise-dev/spendwise/internal/activity"
	"github.com/spendwise-dev/spendwise/internal/users"
)

func newRegisterCommand(dataDir *string) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a new user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			err := users.NewService(*dataDir).Register(username, password)
			if errors.Is(err, users.ErrDuplicateUser) {
				return fmt.Errorf("username %q is already taken", username)
			}
			if err != nil {
				return err
			}

			if err := activity.Record(*dataDir, username, activity.ActionRegister, ""); err != nil {
				return fmt.Errorf("recording activity: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password for the new account (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
