// Package profile reshapes raw generation and demand records into
// trading-period matrices and derives weekday-average profiles from them.
package profile

import (
	"strings"
	"time"

	"github.com/nzgridlab/gridsim/core/geo"
	"github.com/nzgridlab/gridsim/core/logger"
	"github.com/nzgridlab/gridsim/core/model"
)

// pocRegionOverrides assigns regions for points of connection whose NZTM
// coordinates are missing from the network supply points table.
var pocRegionOverrides = map[string]string{
	"HRP2201": "Central North Island",
	"JRD1101": "Lower North Island",
	"TAB0331": "Central North Island",
	"TAB2201": "Central North Island",
	"BEN2202": "Lower South Island",
}

// Builder constructs trading-period matrices from raw tabular rows. The
// zero value is usable; Log defaults to a no-op.
type Builder struct {
	Log logger.Logger
}

func (b Builder) warnf(format string, args ...any) {
	if b.Log != nil {
		b.Log.Warnf(format, args...)
	}
}

// networkIndex maps POC codes to WGS84 points, dropping duplicates and
// entries without coordinates.
func networkIndex(network []model.NetworkPoint) map[string]geo.Point {
	idx := make(map[string]geo.Point, len(network))
	for _, np := range network {
		if np.Easting == 0 || np.Northing == 0 {
			continue
		}
		if _, ok := idx[np.POCCode]; ok {
			continue
		}
		idx[np.POCCode] = geo.NZTMToWGS84(np.Easting, np.Northing)
	}
	return idx
}

// assignRegion locates the point in the region collection, or returns the
// manual override for known coordinate gaps. Empty string means the row is
// unmappable and should be dropped.
func assignRegion(poc string, pt geo.Point, hasPoint bool, regions geo.Collection) string {
	if hasPoint {
		for _, f := range regions.Features {
			if f.Geometry.ContainsPoint(pt) {
				return f.Name
			}
		}
	}
	return pocRegionOverrides[poc]
}

// BuildSupplyMatrix converts raw generation rows to a per-date, per-region
// matrix in MWh. The two daylight-saving overflow periods are discarded,
// kWh values divided by 1000, and each point of connection is assigned a
// region by point-in-polygon lookup of its network supply point coordinate.
// The first assignment per POC wins; rows with no resolvable location are
// dropped. Missing period values count as zero.
func (b Builder) BuildSupplyMatrix(gen []model.GenerationRow, network []model.NetworkPoint, regions geo.Collection) model.TradingPeriodMatrix {
	idx := networkIndex(network)
	pocRegion := make(map[string]string)

	type key struct {
		date   time.Time
		region string
	}
	sums := make(map[key]*[model.PeriodsPerDay]float64)
	var order []key

	dropped := 0
	for _, row := range gen {
		region, seen := pocRegion[row.POCCode]
		if !seen {
			pt, hasPoint := idx[row.POCCode]
			region = assignRegion(row.POCCode, pt, hasPoint, regions)
			pocRegion[row.POCCode] = region
		}
		if region == "" {
			dropped++
			continue
		}
		date, err := parseTradingDate(row.TradingDate)
		if err != nil {
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
		// TP49/TP50 are ignored: indices beyond 48 never land here.
		for i := 0; i < model.PeriodsPerDay; i++ {
			slot[i] += row.PeriodsKWh[i] / 1000
		}
	}
	if dropped > 0 {
		b.warnf("supply matrix: dropped %d unmappable generation rows", dropped)
	}

	out := model.TradingPeriodMatrix{Rows: make([]model.PeriodRow, 0, len(order))}
	for _, k := range order {
		out.Rows = append(out.Rows, model.PeriodRow{Date: k.date, Region: k.region, Periods: *sums[k]})
	}
	return out
}

// parseTradingDate accepts the ISO layout used by generation extracts and
// the day-first layout used by demand extracts.
func parseTradingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse("2/01/2006", s)
}
