// Package charts builds the data behind the dashboard's visualization
// catalog: ten charts shown in paginated groups of three. Only the series
// data is produced here; rendering belongs to the client.
package charts

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendwise-dev/spendwise/internal/model"
	"github.com/spendwise-dev/spendwise/internal/report"
)

// PageSize is the number of charts shown per page.
const PageSize = 3

// Kind names the visualization a chart is intended for.
type Kind string

const (
	KindPie        Kind = "pie"
	KindBar        Kind = "bar"
	KindLine       Kind = "line"
	KindTreemap    Kind = "treemap"
	KindSunburst   Kind = "sunburst"
	KindArea       Kind = "area"
	KindBox        Kind = "box"
	KindHeatmap    Kind = "heatmap"
	KindStackedBar Kind = "stacked-bar"
	KindFunnel     Kind = "funnel"
)

// Point is one labeled value in a series.
type Point struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Series is a named sequence of points. Single-series charts use one.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Chart is one entry in the catalog.
type Chart struct {
	Title  string   `json:"title"`
	Kind   Kind     `json:"kind"`
	Series []Series `json:"series"`
}

const dayLabel = "2006-01-02"

// BuildAll derives the full ten-chart catalog from a user's records.
func BuildAll(records []model.Expense) []Chart {
	byCategory := report.CategorySummary(records)
	daily := report.DailySummary(records)

	return []Chart{
		{Title: "Spending Distribution", Kind: KindPie, Series: []Series{categorySeries("by category", byCategory)}},
		{Title: "Category Comparison", Kind: KindBar, Series: []Series{categorySeries("by category", sortByAmountDesc(byCategory))}},
		{Title: "Spending Over Time", Kind: KindLine, Series: []Series{dailySeries("daily total", daily)}},
		{Title: "Category Treemap", Kind: KindTreemap, Series: []Series{categorySeries("by category", byCategory)}},
		{Title: "Sunburst View", Kind: KindSunburst, Series: monthCategorySeries(records)},
		{Title: "Cumulative Spending", Kind: KindArea, Series: []Series{cumulativeSeries(records)}},
		{Title: "Transaction Spread", Kind: KindBox, Series: amountSpreadSeries(records)},
		{Title: "Daily Heatmap", Kind: KindHeatmap, Series: []Series{dailySeries("daily total", daily)}},
		{Title: "Monthly Stacked View", Kind: KindStackedBar, Series: monthCategorySeries(records)},
		{Title: "Transaction Frequency", Kind: KindFunnel, Series: []Series{frequencySeries(records)}},
	}
}

// Pages returns the page count for n charts.
func Pages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// Page returns the charts on the given zero-based page.
func Page(all []Chart, page int) []Chart {
	start := page * PageSize
	if start < 0 || start >= len(all) {
		return nil
	}
	end := start + PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func categorySeries(name string, byCategory []report.CategoryAmount) Series {
	s := Series{Name: name, Points: make([]Point, 0, len(byCategory))}
	for _, ca := range byCategory {
		s.Points = append(s.Points, Point{Label: ca.Category, Value: ca.Amount})
	}
	return s
}

func sortByAmountDesc(byCategory []report.CategoryAmount) []report.CategoryAmount {
	sorted := make([]report.CategoryAmount, len(byCategory))
	copy(sorted, byCategory)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	return sorted
}

func dailySeries(name string, daily []report.DayAmount) Series {
	s := Series{Name: name, Points: make([]Point, 0, len(daily))}
	for _, da := range daily {
		s.Points = append(s.Points, Point{Label: da.Day.Format(dayLabel), Value: da.Amount})
	}
	return s
}

func cumulativeSeries(records []model.Expense) Series {
	series := report.CumulativeSeries(records)
	s := Series{Name: "cumulative", Points: make([]Point, 0, len(series))}
	for _, cp := range series {
		s.Points = append(s.Points, Point{Label: cp.Date.Format(dayLabel), Value: cp.Running})
	}
	return s
}

// monthCategorySeries emits one series per category with a point per month,
// zero-filled, for stacked and sunburst style charts.
func monthCategorySeries(records []model.Expense) []Series {
	pivot := report.MonthlyCategorySummary(records)
	result := make([]Series, 0, len(pivot.Categories))
	for i, c := range pivot.Categories {
		s := Series{Name: c, Points: make([]Point, 0, len(pivot.Months))}
		for j, m := range pivot.Months {
			s.Points = append(s.Points, Point{Label: m, Value: pivot.Rows[j][i]})
		}
		result = append(result, s)
	}
	return result
}

// amountSpreadSeries emits one series per category holding every raw
// transaction amount, for box-plot style distribution views.
func amountSpreadSeries(records []model.Expense) []Series {
	indexed := make(map[string]int)
	var result []Series
	for _, e := range records {
		i, ok := indexed[e.Category]
		if !ok {
			i = len(result)
			indexed[e.Category] = i
			result = append(result, Series{Name: e.Category})
		}
		result[i].Points = append(result[i].Points, Point{Label: e.Date.Format(dayLabel), Value: e.Amount})
	}
	return result
}

func frequencySeries(records []model.Expense) Series {
	freq := report.CategoryFrequency(records)
	s := Series{Name: "transactions", Points: make([]Point, 0, len(freq))}
	for _, cc := range freq {
		s.Points = append(s.Points, Point{Label: cc.Category, Value: decimal.NewFromInt(int64(cc.Count))})
	}
	return s
}
