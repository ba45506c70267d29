package fleet

import (
	"errors"
	"strings"

	"github.com/nzgridlab/gridsim/core/model"
)

// ErrEmptyFleet is returned when asked to summarise a fleet with no usable
// records. Downstream controls need real counts, so this fails loudly
// instead of substituting zeros.
var ErrEmptyFleet = errors.New("fleet: no records to summarise")

// Clean attaches region labels to fleet records via the region map and
// drops records that cannot be used: unresolved sub-units and the register's
// "OTHER" motive power sentinel. The input slice is not modified.
func Clean(records []model.VehicleRecord, regions model.RegionMap) []model.VehicleRecord {
	out := make([]model.VehicleRecord, 0, len(records))
	for _, rec := range records {
		if rec.MotivePower == motiveOther {
			continue
		}
		region, ok := regions[strings.ToUpper(rec.SubunitCode)]
		if !ok {
			continue
		}
		rec.SubunitCode = strings.ToUpper(rec.SubunitCode)
		rec.Region = region
		out = append(out, rec)
	}
	return out
}

// Summarize groups cleaned records and counts the four classification
// buckets per group. In territorial view the grouping key is the sub-unit
// code, otherwise the resolved region name. A synthetic row keyed by
// model.WholeTerritory holds the column-wise national totals.
func Summarize(records []model.VehicleRecord, territorialView bool) (model.FleetSummary, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFleet
	}
	summary := make(model.FleetSummary)
	var total model.FleetCounts
	for _, rec := range records {
		key := rec.Region
		if territorialView {
			key = rec.SubunitCode
		}
		counts := summary[key]
		cls := Classify(rec)
		switch {
		case cls.Electric && cls.Heavy:
			counts.HeavyElectric++
			total.HeavyElectric++
		case cls.Electric:
			counts.LightElectric++
			total.LightElectric++
		case cls.Heavy:
			counts.HeavyCombustion++
			total.HeavyCombustion++
		default:
			counts.LightCombustion++
			total.LightCombustion++
		}
		summary[key] = counts
	}
	summary[model.WholeTerritory] = total
	return summary, nil
}

// EVShare returns the percentage of the class that is electric, 0 when the
// class has no vehicles at all so slider defaults stay well-defined.
func EVShare(counts model.FleetCounts, heavy bool) float64 {
	var ev, total int
	if heavy {
		ev = counts.HeavyElectric
		total = counts.HeavyElectric + counts.HeavyCombustion
	} else {
		ev = counts.LightElectric
		total = counts.LightElectric + counts.LightCombustion
	}
	if total == 0 {
		return 0
	}
	return float64(ev) / float64(total) * 100
}

// LightHeavyRatio returns light vehicles per heavy vehicle, 0 when there
// are no heavy vehicles.
func LightHeavyRatio(counts model.FleetCounts) float64 {
	heavy := counts.HeavyElectric + counts.HeavyCombustion
	if heavy == 0 {
		return 0
	}
	return float64(counts.LightElectric+counts.LightCombustion) / float64(heavy)
}
