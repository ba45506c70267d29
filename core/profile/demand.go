package profile

import (
	"strconv"
	"strings"
	"time"

	"github.com/nzgridlab/gridsim/core/geo"
	"github.com/nzgridlab/gridsim/core/model"
)

// BuildDemandMatrix converts raw demand rows to a per-date, per-region
// matrix in MWh. The combined "period start" field is split into a trading
// date and a 1-based period index, and GWh values multiplied by 1000.
//
// Zone extracts carry a usable region label directly. Node extracts are
// keyed by point of connection instead, so in territorial view each row is
// geolocated through the network supply points table and assigned a region
// by point-in-polygon lookup, exactly as generation rows are.
func (b Builder) BuildDemandMatrix(dem []model.DemandRow, network []model.NetworkPoint, regions geo.Collection, territorialView bool) model.TradingPeriodMatrix {
	var idx map[string]geo.Point
	nodeRegion := make(map[string]string)
	if territorialView {
		idx = networkIndex(network)
	}

	type key struct {
		date   time.Time
		region string
	}
	sums := make(map[key]*[model.PeriodsPerDay]float64)
	var order []key

	dropped := 0
	for _, row := range dem {
		date, period, err := splitPeriodStart(row.PeriodStart)
		if err != nil {
			dropped++
			continue
		}

		region := row.Region
		if territorialView {
			var seen bool
			region, seen = nodeRegion[row.RegionID]
			if !seen {
				pt, hasPoint := idx[row.RegionID]
				region = assignRegion(row.RegionID, pt, hasPoint, regions)
				nodeRegion[row.RegionID] = region
			}
		}
		if region == "" {
			dropped++
			continue
		}

		k := key{date: date, region: region}
		slot, ok := sums[k]
		if !ok {
			slot = &[model.PeriodsPerDay]float64{}
			sums[k] = slot
			order = append(order, k)
		}
		slot[period-1] += row.DemandGWh * 1000
	}
	if dropped > 0 {
		b.warnf("demand matrix: dropped %d unusable demand rows", dropped)
	}

	out := model.TradingPeriodMatrix{Rows: make([]model.PeriodRow, 0, len(order))}
	for _, k := range order {
		out.Rows = append(out.Rows, model.PeriodRow{Date: k.date, Region: k.region, Periods: *sums[k]})
	}
	return out
}

// splitPeriodStart splits a combined "date period" string such as
// "3/03/2025 17" into its trading date and 1-based period index.
func splitPeriodStart(s string) (time.Time, int, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return time.Time{}, 0, strconv.ErrSyntax
	}
	date, err := parseTradingDate(fields[0])
	if err != nil {
		return time.Time{}, 0, err
	}
	period, err := strconv.Atoi(fields[1])
	if err != nil {
		return time.Time{}, 0, err
	}
	if period < 1 || period > model.PeriodsPerDay {
		return time.Time{}, 0, strconv.ErrRange
	}
	return date, period, nil
}
