package charts

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise-dev/spendwise/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRecords() []model.Expense {
	return []model.Expense{
		{Username: "alice", Date: date(2024, 1, 5), Category: "Food", Amount: dec("10.00")},
		{Username: "alice", Date: date(2024, 1, 6), Category: "Food", Amount: dec("5.00")},
		{Username: "alice", Date: date(2024, 2, 7), Category: "Travel", Amount: dec("20.00")},
	}
}

func TestBuildAllHasTenCharts(t *testing.T) {
	all := BuildAll(sampleRecords())
	require.Len(t, all, 10)

	titles := make(map[string]bool)
	for _, c := range all {
		titles[c.Title] = true
		assert.NotEmpty(t, c.Kind, "chart %q missing kind", c.Title)
	}
	assert.True(t, titles["Spending Distribution"])
	assert.True(t, titles["Cumulative Spending"])
	assert.True(t, titles["Transaction Frequency"])
}

func TestBuildAllEmptyRecords(t *testing.T) {
	all := BuildAll(nil)
	require.Len(t, all, 10)
	for _, c := range all {
		for _, s := range c.Series {
			assert.Empty(t, s.Points, "chart %q should have no data", c.Title)
		}
	}
}

func TestPages(t *testing.T) {
	assert.Equal(t, 4, Pages(10), "10 charts in groups of 3 is 4 pages")
	assert.Equal(t, 1, Pages(3))
	assert.Equal(t, 2, Pages(4))
	assert.Equal(t, 0, Pages(0))
}

func TestPageSlicing(t *testing.T) {
	all := BuildAll(sampleRecords())

	first := Page(all, 0)
	require.Len(t, first, 3)
	assert.Equal(t, "Spending Distribution", first[0].Title)

	// The last page holds the one leftover chart.
	last := Page(all, 3)
	require.Len(t, last, 1)
	assert.Equal(t, "Transaction Frequency", last[0].Title)

	assert.Empty(t, Page(all, 4))
	assert.Empty(t, Page(all, -1))
}

func TestCategoryComparisonSortedDescending(t *testing.T) {
	all := BuildAll(sampleRecords())

	var bar Chart
	for _, c := range all {
		if c.Title == "Category Comparison" {
			bar = c
		}
	}
	require.Len(t, bar.Series, 1)
	points := bar.Series[0].Points
	require.Len(t, points, 2)
	assert.Equal(t, "Travel", points[0].Label)
	assert.Equal(t, "Food", points[1].Label)
}

func TestMonthlyStackedViewZeroFills(t *testing.T) {
	all := BuildAll(sampleRecords())

	var stacked Chart
	for _, c := range all {
		if c.Title == "Monthly Stacked View" {
			stacked = c
		}
	}
	require.Len(t, stacked.Series, 2, "one series per category")
	for _, s := range stacked.Series {
		require.Len(t, s.Points, 2, "one point per month for %q", s.Name)
	}

	// Travel has no January spend: zero-filled.
	var travel Series
	for _, s := range stacked.Series {
		if s.Name == "Travel" {
			travel = s
		}
	}
	assert.Equal(t, "2024-01", travel.Points[0].Label)
	assert.True(t, travel.Points[0].Value.IsZero())
	assert.True(t, travel.Points[1].Value.Equal(dec("20.00")))
}

func TestCumulativeChartEndsAtGrandTotal(t *testing.T) {
	all := BuildAll(sampleRecords())

	var area Chart
	for _, c := range all {
		if c.Title == "Cumulative Spending" {
			area = c
		}
	}
	require.Len(t, area.Series, 1)
	points := area.Series[0].Points
	require.Len(t, points, 3)
	assert.True(t, points[2].Value.Equal(dec("35.00")))
}
