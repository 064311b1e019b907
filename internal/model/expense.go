package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a row in expenses.csv. Rows are immutable once
// appended; there is no edit or delete lifecycle.
type Expense struct {
	Username    string
	Date        time.Time
	Category    string
	Amount      decimal.Decimal // always >= 0.01
	Description string          // optional
}

// Day returns the expense date truncated to midnight UTC, for grouping
// by calendar day.
func (e Expense) Day() time.Time {
	y, m, d := e.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// YearMonth returns the "2006-01" key for the expense's calendar month.
func (e Expense) YearMonth() string {
	return e.Date.Format("2006-01")
}
