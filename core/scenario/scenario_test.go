package scenario

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzgridlab/gridsim/core/model"
)

func flatProfile(demand, supply float64) model.DayProfile {
	var p model.DayProfile
	for i := range p.Demand {
		p.Demand[i] = demand
		p.Supply[i] = supply
	}
	return p
}

func TestEffectiveProfileSumsToOne(t *testing.T) {
	for _, b := range []Behaviour{StatusQuo, DaytimePriority} {
		for _, compliance := range []float64{0, 25, 50, 99, 100} {
			w, err := EffectiveProfile(b, compliance)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, w.Sum(), 1e-9, "behaviour %s compliance %f", b, compliance)
		}
	}
}

func TestEffectiveProfileUnknownBehaviour(t *testing.T) {
	_, err := EffectiveProfile("charge-whenever", 100)
	require.Error(t, err)
}

func TestNonCompliantProfileDeterministic(t *testing.T) {
	a := NonCompliantProfile()
	b := NonCompliantProfile()
	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, a.Sum(), 1e-9)
}

func TestProjectNoOp(t *testing.T) {
	baseline := flatProfile(100, 120)
	// current light share is 25%; target the same share
	counts := model.FleetCounts{LightElectric: 25, LightCombustion: 75}
	res, err := Project(baseline, counts, Params{
		TargetLightPct: 25,
		Behaviour:      StatusQuo,
		CompliancePct:  100,
		ExpansionPct:   0,
	})
	require.NoError(t, err)
	for i := range baseline.Demand {
		assert.InDelta(t, baseline.Demand[i], res.Adjusted.Demand[i], 1e-9)
		assert.InDelta(t, baseline.Supply[i], res.Adjusted.Supply[i], 1e-9)
	}
	assert.InDelta(t, 0, res.NeededLight, 1e-9)
}

func TestProjectEnergyConfinedToWindow(t *testing.T) {
	baseline := flatProfile(0, 100)
	counts := model.FleetCounts{LightElectric: 10, LightCombustion: 90}
	res, err := Project(baseline, counts, Params{
		TargetLightPct: 50,
		Behaviour:      DaytimePriority,
		CompliancePct:  100,
	})
	require.NoError(t, err)

	// 40 new light EVs at 0.19 kWh/km * 40 km/day
	wantMWh := 40 * LightKWhPerKm * LightKmPerDay / 1000
	assert.InDelta(t, wantMWh, res.ExtraDemandMWh, 1e-9)

	var inWindow, outWindow float64
	for i, v := range res.Adjusted.Demand {
		if i >= 18 && i < 34 {
			inWindow += v
		} else {
			outWindow += v
		}
	}
	assert.InDelta(t, wantMWh, inWindow, 1e-9)
	assert.Zero(t, outWindow, "no charging mass outside the behaviour window at full compliance")
}

func TestProjectNegativeUptakeNotClamped(t *testing.T) {
	baseline := flatProfile(100, 120)
	counts := model.FleetCounts{LightElectric: 50, LightCombustion: 50}
	res, err := Project(baseline, counts, Params{
		TargetLightPct: 10, // below the current 50% share
		Behaviour:      StatusQuo,
		CompliancePct:  100,
	})
	require.NoError(t, err)
	assert.InDelta(t, -40, res.NeededLight, 1e-9)
	assert.Less(t, res.Adjusted.Demand[40], 100.0, "reduction scenario lowers demand in the charging window")
}

func TestSupplyExpansionAllocation(t *testing.T) {
	baseline := flatProfile(0, 100) // 4800 MWh baseline day
	counts := model.FleetCounts{LightElectric: 1, LightCombustion: 1}
	res, err := Project(baseline, counts, Params{
		TargetLightPct: 50,
		Behaviour:      StatusQuo,
		CompliancePct:  100,
		ExpansionPct:   10,
		WindSolarPct:   60,
	})
	require.NoError(t, err)

	totalNew := 0.0
	for i := range res.Adjusted.Supply {
		totalNew += res.Adjusted.Supply[i] - baseline.Supply[i]
	}
	assert.InDelta(t, 480, totalNew, 1e-9)

	// Wind alone covers slots outside the solar window.
	wind := 480.0 * 0.6
	assert.InDelta(t, wind/48, res.Adjusted.Supply[0]-baseline.Supply[0], 1e-9)
	// A daylight slot carries wind plus its solar share.
	solar := 480.0 * 0.4
	assert.InDelta(t, wind/48+solar/16, res.Adjusted.Supply[20]-baseline.Supply[20], 1e-9)
}

func TestClosestMatch(t *testing.T) {
	var p model.DayProfile
	p.Demand[0], p.Demand[1] = 100, 90
	p.Supply[0], p.Supply[1] = 150, 95
	// remaining slots are 0/0, diff 0 — fill them to keep slot 1 the minimum
	for i := 2; i < model.PeriodsPerDay; i++ {
		p.Demand[i] = 1000
		p.Supply[i] = 0
	}
	slot, ratio := closestMatch(p)
	assert.Equal(t, 1, slot)
	assert.InDelta(t, 90.0/95.0, ratio, 1e-9)
	assert.Equal(t, "00:30", model.SlotTime(slot))
}

func TestMeanRatioZeroSupplyGuard(t *testing.T) {
	var p model.DayProfile
	for i := range p.Demand {
		p.Demand[i] = 50
	}
	// supply all zero: every slot ratio defined as 0
	assert.Zero(t, meanRatio(p))

	p.Supply[0] = 100
	want := (50.0 / 100.0) / 48
	assert.InDelta(t, want, meanRatio(p), 1e-9)
}

func TestParamsValidate(t *testing.T) {
	ok := Params{TargetLightPct: 50, Behaviour: StatusQuo, CompliancePct: 100}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.CompliancePct = 101
	require.Error(t, bad.Validate())

	bad = ok
	bad.TargetLightPct = -1
	require.Error(t, bad.Validate())

	bad = ok
	bad.Behaviour = "random"
	require.Error(t, bad.Validate())
}

func TestBehaviourWindows(t *testing.T) {
	sq, err := BehaviourProfile(StatusQuo)
	require.NoError(t, err)
	// 18:00-24:00 is 12 slots, 00:00-07:00 is 14; weight is uniform inside.
	assert.InDelta(t, 1.0/26, sq[40], 1e-9)
	assert.Zero(t, sq[20])
	assert.False(t, math.Signbit(sq[0]))

	day, err := BehaviourProfile(DaytimePriority)
	require.NoError(t, err)
	assert.Zero(t, day[0])
	assert.InDelta(t, 1.0/16, day[20], 1e-9)
}
