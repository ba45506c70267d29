package profile

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/nzgridlab/gridsim/core/model"
)

// AverageProfile computes the arithmetic mean per half-hour period across
// all rows whose date falls on the given weekday (0=Monday..6=Sunday). An
// empty selection yields a zero profile so downstream arithmetic stays
// well-defined; the result is always 48 values.
func AverageProfile(m model.TradingPeriodMatrix, weekday int) [model.PeriodsPerDay]float64 {
	var out [model.PeriodsPerDay]float64
	cols := make([][]float64, model.PeriodsPerDay)
	for _, row := range m.Rows {
		if mondayIndexed(row.Date) != weekday {
			continue
		}
		for i, v := range row.Periods {
			cols[i] = append(cols[i], v)
		}
	}
	for i, col := range cols {
		if len(col) == 0 {
			continue
		}
		out[i] = stat.Mean(col, nil)
	}
	return out
}

// DayProfile pairs the weekday-average demand and supply profiles for a
// region selection.
func DayProfile(demand, supply model.TradingPeriodMatrix, region string, weekday int) model.DayProfile {
	return model.DayProfile{
		Demand: AverageProfile(demand.FilterRegion(region), weekday),
		Supply: AverageProfile(supply.FilterRegion(region), weekday),
	}
}

// mondayIndexed converts Go's Sunday-first weekday to the Monday-first
// index used throughout the UI.
func mondayIndexed(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
