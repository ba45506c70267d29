package fleet

import (
	"fmt"

	"github.com/nzgridlab/gridsim/core/model"
)

// CommonEV describes the most registered EV make and model of a weight
// class and the modal year of that model.
type CommonEV struct {
	MakeModel string `json:"make_model"`
	Year      int    `json:"year"`
	Count     int    `json:"count"`
}

// MostCommonEV returns the modal make+model among electric vehicles of the
// requested weight class, restricted to the given region unless it is the
// whole-territory aggregate. Ties resolve to the lexicographically first
// make+model so repeated calls agree. ok is false when the class has no EVs.
func MostCommonEV(records []model.VehicleRecord, heavy bool, region string) (CommonEV, bool) {
	counts := make(map[string]int)
	years := make(map[string]map[int]int)
	for _, rec := range records {
		if region != model.WholeTerritory && rec.Region != region {
			continue
		}
		cls := Classify(rec)
		if !cls.Electric || cls.Heavy != heavy {
			continue
		}
		key := fmt.Sprintf("%s %s", rec.Make, rec.Model)
		counts[key]++
		if years[key] == nil {
			years[key] = make(map[int]int)
		}
		years[key][rec.Year]++
	}

	var best CommonEV
	for key, n := range counts {
		if n > best.Count || (n == best.Count && key < best.MakeModel) {
			best = CommonEV{MakeModel: key, Count: n}
		}
	}
	if best.Count == 0 {
		return CommonEV{}, false
	}
	bestYearCount := 0
	for year, n := range years[best.MakeModel] {
		if n > bestYearCount || (n == bestYearCount && year < best.Year) {
			best.Year = year
			bestYearCount = n
		}
	}
	return best, true
}
