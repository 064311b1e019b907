package expenses

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spendwise-dev/spendwise/internal/model"
)

// ValidationError describes a single rejected field on a new expense.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// minAmount mirrors the entry form's minimum of 0.01.
var minAmount = decimal.New(1, -2)

// ValidateExpense checks a candidate expense before it is appended.
// Amounts below 0.01 (including zero and refund-style negatives) are
// rejected, as are amounts with more than 2 decimal places.
func ValidateExpense(e model.Expense) []ValidationError {
	var errs []ValidationError

	if e.Username == "" {
		errs = append(errs, ValidationError{
			Field:       "username",
			Description: "must not be empty",
		})
	}

	if e.Date.IsZero() {
		errs = append(errs, ValidationError{
			Field:       "date",
			Description: "must be set",
		})
	}

	if e.Category == "" {
		errs = append(errs, ValidationError{
			Field:       "category",
			Description: "must not be empty",
		})
	}

	if e.Amount.LessThan(minAmount) {
		errs = append(errs, ValidationError{
			Field:       "amount",
			Description: fmt.Sprintf("%s is below the minimum of 0.01", e.Amount),
		})
	}

	hundred := decimal.NewFromInt(100)
	if !e.Amount.Mul(hundred).Equal(e.Amount.Mul(hundred).Floor()) {
		errs = append(errs, ValidationError{
			Field:       "amount",
			Description: fmt.Sprintf("%s has more than 2 decimal places", e.Amount),
		})
	}

	return errs
}
