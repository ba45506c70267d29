package model

import (
	"fmt"
	"strings"
	"time"
)

// PeriodsPerDay is the number of half-hour trading periods in a day.
const PeriodsPerDay = 48

// PeriodRow is one (date, region) row of a trading-period matrix with one
// value per half-hour period, ordered 1..48.
type PeriodRow struct {
	Date    time.Time
	Region  string
	Periods [PeriodsPerDay]float64
}

// TradingPeriodMatrix is a per-date, per-region table of half-hourly MWh
// values, for either generation (supply) or load (demand).
type TradingPeriodMatrix struct {
	Rows []PeriodRow
}

// FilterRegion returns a new matrix restricted to rows of the given region.
// Matching ignores case since fleet tables are upper-cased while boundary
// features keep their original casing. The WholeTerritory aggregate sums
// all regions into one national row per date, so its weekday averages are
// national totals rather than per-region means.
func (m TradingPeriodMatrix) FilterRegion(region string) TradingPeriodMatrix {
	if strings.EqualFold(region, WholeTerritory) {
		return m.sumByDate()
	}
	var out TradingPeriodMatrix
	for _, r := range m.Rows {
		if strings.EqualFold(r.Region, region) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// sumByDate collapses the matrix to one row per date, summing every region's
// periods. Dates keep their first-seen order.
func (m TradingPeriodMatrix) sumByDate() TradingPeriodMatrix {
	sums := make(map[time.Time]*[PeriodsPerDay]float64)
	var order []time.Time
	for _, r := range m.Rows {
		slot, ok := sums[r.Date]
		if !ok {
			slot = &[PeriodsPerDay]float64{}
			sums[r.Date] = slot
			order = append(order, r.Date)
		}
		for i, v := range r.Periods {
			slot[i] += v
		}
	}
	out := TradingPeriodMatrix{Rows: make([]PeriodRow, 0, len(order))}
	for _, date := range order {
		out.Rows = append(out.Rows, PeriodRow{Date: date, Region: WholeTerritory, Periods: *sums[date]})
	}
	return out
}

// DayProfile is a pair of 48-slot demand and supply sequences for one
// weekday, in MWh. Recomputed per selection, never persisted.
type DayProfile struct {
	Demand [PeriodsPerDay]float64 `json:"demand"`
	Supply [PeriodsPerDay]float64 `json:"supply"`
}

// SlotTime returns the HH:MM label of the start of slot i (0-based).
func SlotTime(i int) string {
	return fmt.Sprintf("%02d:%02d", i/2, (i%2)*30)
}

// SlotTimes returns the 48 half-hour start labels of a day.
func SlotTimes() []string {
	out := make([]string, PeriodsPerDay)
	for i := range out {
		out[i] = SlotTime(i)
	}
	return out
}
