// Package report derives summary statistics and grouped series from expense
// records. Every function is pure: identical records (and reference time,
// where one is taken) produce identical output, and empty input produces
// empty results rather than errors.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise-dev/spendwise/internal/model"
)

// NA is the sentinel reported when a statistic is asked of an empty
// record set.
const NA = "N/A"

// Snapshot holds the dashboard metric-card values.
type Snapshot struct {
	Total       decimal.Decimal // sum over all records
	MonthTotal  decimal.Decimal // sum over the calendar month of the reference time
	Average     decimal.Decimal // mean amount, zero when HasAverage is false
	HasAverage  bool            // false for an empty record set
	TopCategory string          // most frequent category, NA when empty
}

// CategoryAmount is an amount aggregated under one category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// CategoryCount is a record count for one category.
type CategoryCount struct {
	Category string
	Count    int
}

// DayAmount is the total spent on one calendar day.
type DayAmount struct {
	Day    time.Time
	Amount decimal.Decimal
}

// CumulativePoint is one step of the running-sum series.
type CumulativePoint struct {
	Date    time.Time
	Amount  decimal.Decimal
	Running decimal.Decimal
}

// MonthlyPivot is amount-by-month-and-category: one row per year-month, one
// column per category, missing combinations zero-filled.
type MonthlyPivot struct {
	Months     []string            // "2006-01" keys, ascending
	Categories []string            // sorted alphabetically
	Rows       [][]decimal.Decimal // len(Months) x len(Categories)
}

// Summarize computes the dashboard metrics. The reference time bounds the
// "this month" total to its calendar year and month.
func Summarize(records []model.Expense, now time.Time) Snapshot {
	snap := Snapshot{
		Total:       decimal.Zero,
		MonthTotal:  decimal.Zero,
		Average:     decimal.Zero,
		TopCategory: MostFrequentCategory(records),
	}

	for _, e := range records {
		snap.Total = snap.Total.Add(e.Amount)
		if e.Date.Year() == now.Year() && e.Date.Month() == now.Month() {
			snap.MonthTotal = snap.MonthTotal.Add(e.Amount)
		}
	}

	if len(records) > 0 {
		snap.HasAverage = true
		snap.Average = snap.Total.Div(decimal.NewFromInt(int64(len(records)))).Round(2)
	}
	return snap
}

// CategorySummary sums amounts per distinct category.
func CategorySummary(records []model.Expense) []CategoryAmount {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, e := range records {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	result := make([]CategoryAmount, 0, len(order))
	for _, c := range order {
		result = append(result, CategoryAmount{Category: c, Amount: totals[c]})
	}
	return result
}

// CategoryFrequency counts records per category, descending by count. Ties
// keep first-encountered order.
func CategoryFrequency(records []model.Expense) []CategoryCount {
	counts := make(map[string]int)
	var order []string
	for _, e := range records {
		if _, seen := counts[e.Category]; !seen {
			order = append(order, e.Category)
		}
		counts[e.Category]++
	}

	result := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		result = append(result, CategoryCount{Category: c, Count: counts[c]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// MostFrequentCategory returns the category with the highest record count,
// first-encountered order breaking ties, NA for an empty set.
func MostFrequentCategory(records []model.Expense) string {
	freq := CategoryFrequency(records)
	if len(freq) == 0 {
		return NA
	}
	return freq[0].Category
}

// DailySummary sums amounts per calendar day over the full range spanned by
// the records, zero-filling days with no expenses so the series is
// continuous.
func DailySummary(records []model.Expense) []DayAmount {
	if len(records) == 0 {
		return nil
	}

	totals := make(map[time.Time]decimal.Decimal)
	first, last := records[0].Day(), records[0].Day()
	for _, e := range records {
		day := e.Day()
		totals[day] = totals[day].Add(e.Amount)
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}

	var result []DayAmount
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		amount, ok := totals[day]
		if !ok {
			amount = decimal.Zero
		}
		result = append(result, DayAmount{Day: day, Amount: amount})
	}
	return result
}

// CumulativeSeries sorts records ascending by date (stable, so equal dates
// keep insertion order) and emits a running sum per record.
func CumulativeSeries(records []model.Expense) []CumulativePoint {
	sorted := make([]model.Expense, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	running := decimal.Zero
	result := make([]CumulativePoint, 0, len(sorted))
	for _, e := range sorted {
		running = running.Add(e.Amount)
		result = append(result, CumulativePoint{Date: e.Date, Amount: e.Amount, Running: running})
	}
	return result
}

// MonthlyCategorySummary pivots amounts by (year-month, category).
func MonthlyCategorySummary(records []model.Expense) MonthlyPivot {
	type key struct{ month, category string }
	totals := make(map[key]decimal.Decimal)
	monthSet := make(map[string]bool)
	categorySet := make(map[string]bool)

	for _, e := range records {
		k := key{month: e.YearMonth(), category: e.Category}
		totals[k] = totals[k].Add(e.Amount)
		monthSet[k.month] = true
		categorySet[k.category] = true
	}

	pivot := MonthlyPivot{}
	for m := range monthSet {
		pivot.Months = append(pivot.Months, m)
	}
	for c := range categorySet {
		pivot.Categories = append(pivot.Categories, c)
	}
	sort.Strings(pivot.Months)
	sort.Strings(pivot.Categories)

	for _, m := range pivot.Months {
		row := make([]decimal.Decimal, len(pivot.Categories))
		for i, c := range pivot.Categories {
			amount, ok := totals[key{month: m, category: c}]
			if !ok {
				amount = decimal.Zero
			}
			row[i] = amount
		}
		pivot.Rows = append(pivot.Rows, row)
	}
	return pivot
}
