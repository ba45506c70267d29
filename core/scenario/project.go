package scenario

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/nzgridlab/gridsim/core/model"
)

// Reference vehicle energy constants. One new EV of a class adds
// efficiency * daily distance kWh of charging demand per day.
const (
	LightKWhPerKm = 0.19
	LightKmPerDay = 40.0
	HeavyKWhPerKm = 0.80
	HeavyKmPerDay = 300.0
)

// Solar generation is confined to a fixed daylight window, 09:00-17:00.
// Wind spreads uniformly over the whole day.
var solarWindow = [2]int{18, 34}

// Params are the user-selected scenario controls.
type Params struct {
	TargetLightPct float64   `json:"target_light_pct"`
	TargetHeavyPct float64   `json:"target_heavy_pct"`
	Behaviour      Behaviour `json:"behaviour"`
	CompliancePct  float64   `json:"compliance_pct"`
	ExpansionPct   float64   `json:"expansion_pct"`
	// WindSolarPct is the share of new supply built as wind; the rest is solar.
	WindSolarPct float64 `json:"wind_solar_pct"`
}

// Validate rejects out-of-range percentages.
func (p Params) Validate() error {
	check := func(name string, v float64) error {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be in [0,100], got %f", name, v)
		}
		return nil
	}
	if err := check("target_light_pct", p.TargetLightPct); err != nil {
		return err
	}
	if err := check("target_heavy_pct", p.TargetHeavyPct); err != nil {
		return err
	}
	if err := check("compliance_pct", p.CompliancePct); err != nil {
		return err
	}
	if err := check("expansion_pct", p.ExpansionPct); err != nil {
		return err
	}
	if err := check("wind_solar_pct", p.WindSolarPct); err != nil {
		return err
	}
	if _, err := BehaviourProfile(p.Behaviour); err != nil {
		return err
	}
	return nil
}

// Result is the adjusted profile pair plus the derived summary statistics
// the dashboard shows.
type Result struct {
	Adjusted model.DayProfile `json:"adjusted"`
	// ExtraDemandMWh is the projected additional charging energy per day.
	ExtraDemandMWh float64 `json:"extra_demand_mwh"`
	// NeededLight and NeededHeavy are the vehicle count changes required to
	// meet the uptake targets. Negative values are fleet reduction
	// scenarios and are deliberately not clamped.
	NeededLight float64 `json:"needed_light"`
	NeededHeavy float64 `json:"needed_heavy"`
	// MeanRatio is the mean demand/supply ratio across the day, with slots
	// of zero supply contributing a ratio of 0.
	MeanRatio float64 `json:"mean_ratio"`
	// ClosestSlot is the half-hour slot where |demand-supply| is smallest.
	ClosestSlot  int     `json:"closest_slot"`
	ClosestTime  string  `json:"closest_time"`
	ClosestRatio float64 `json:"closest_ratio"`
}

// Project computes the adjusted demand and supply profiles for the given
// baseline, regional fleet composition and scenario controls. The transform
// is pure: the baseline is never modified.
func Project(baseline model.DayProfile, counts model.FleetCounts, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	lightTotal := float64(counts.LightElectric + counts.LightCombustion)
	heavyTotal := float64(counts.HeavyElectric + counts.HeavyCombustion)
	neededLight := p.TargetLightPct/100*lightTotal - float64(counts.LightElectric)
	neededHeavy := p.TargetHeavyPct/100*heavyTotal - float64(counts.HeavyElectric)

	extraKWhDay := neededLight*LightKWhPerKm*LightKmPerDay + neededHeavy*HeavyKWhPerKm*HeavyKmPerDay
	extraMWhDay := extraKWhDay / 1000

	effective, err := EffectiveProfile(p.Behaviour, p.CompliancePct)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		NeededLight:    neededLight,
		NeededHeavy:    neededHeavy,
		ExtraDemandMWh: extraMWhDay,
	}
	res.Adjusted = baseline
	for i := range res.Adjusted.Demand {
		res.Adjusted.Demand[i] += extraMWhDay * effective[i]
	}
	expandSupply(&res.Adjusted.Supply, p.ExpansionPct, p.WindSolarPct)

	res.MeanRatio = meanRatio(res.Adjusted)
	res.ClosestSlot, res.ClosestRatio = closestMatch(res.Adjusted)
	res.ClosestTime = model.SlotTime(res.ClosestSlot)
	return res, nil
}

// expandSupply adds the new generation to the baseline supply in place.
// Total new energy is expansionPct of the baseline day's energy. The wind
// share spreads uniformly over all 48 slots; the solar share spreads
// uniformly over the daylight window.
func expandSupply(supply *[model.PeriodsPerDay]float64, expansionPct, windPct float64) {
	total := floats.Sum(supply[:]) * expansionPct / 100
	if total == 0 {
		return
	}
	wind := total * windPct / 100
	solar := total - wind

	perSlotWind := wind / model.PeriodsPerDay
	solarSlots := solarWindow[1] - solarWindow[0]
	perSlotSolar := solar / float64(solarSlots)

	for i := range supply {
		supply[i] += perSlotWind
		if i >= solarWindow[0] && i < solarWindow[1] {
			supply[i] += perSlotSolar
		}
	}
}

func meanRatio(p model.DayProfile) float64 {
	sum := 0.0
	for i := range p.Demand {
		if p.Supply[i] != 0 {
			sum += p.Demand[i] / p.Supply[i]
		}
	}
	return sum / model.PeriodsPerDay
}

// closestMatch returns the slot minimising |demand-supply|, first slot on
// ties, and the demand/supply ratio there (0 for zero supply).
func closestMatch(p model.DayProfile) (int, float64) {
	best := 0
	bestDiff := math.Inf(1)
	for i := range p.Demand {
		diff := math.Abs(p.Demand[i] - p.Supply[i])
		if diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	ratio := 0.0
	if p.Supply[best] != 0 {
		ratio = p.Demand[best] / p.Supply[best]
	}
	return best, ratio
}
