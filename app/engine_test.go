package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzgridlab/gridsim/config"
	"github.com/nzgridlab/gridsim/core/model"
	"github.com/nzgridlab/gridsim/core/scenario"
)

// testDataConfig writes a self-consistent miniature dataset: one grid zone
// containing one territorial authority, one network supply point in
// Wellington, one Monday of generation and demand.
func testDataConfig(t *testing.T) config.DataConfig {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	return config.DataConfig{
		Fleet: write("fleet.csv",
			"TLA,MOTIVE_POWER,GROSS_VEHICLE_MASS,MAKE,MODEL,VEHICLE_YEAR,INDUSTRY_CLASS\n"+
				"Wellington City,ELECTRIC,1624,NISSAN,LEAF,2017,PRIVATE\n"+
				"Wellington City,PETROL,1500,TOYOTA,COROLLA,2015,PRIVATE\n"+
				"Wellington City,DIESEL,12000,VOLVO,FH,2019,FREIGHT\n"),
		Generation: write("gen.csv",
			"Trading_Date,POC_Code,TP1,TP2\n"+
				"2025-03-03,WIL0331,1000,2000\n"),
		DemandZone: write("demand.csv",
			"Period start,Region,Region ID,Demand (GWh)\n"+
				"3/03/2025 1,Test Zone,TZ,0.5\n"),
		Network: write("network.csv",
			"POC code,NZTM easting,NZTM northing\n"+
				"WIL0331,1748735,5428092\n"),
		ZoneBoundaries: write("zones.json", `{
			"type": "FeatureCollection",
			"features": [{
				"properties": {"Region": "Test Zone"},
				"geometry": {"type": "Polygon", "coordinates": [[[173,-42],[176,-42],[176,-40],[173,-40],[173,-42]]]}
			}]
		}`),
		TABoundaries: write("tas.json", `{
			"type": "FeatureCollection",
			"features": [{
				"properties": {"TA2025_V_1": "Wellington City"},
				"geometry": {"type": "Polygon", "coordinates": [[[174,-41.5],[175.5,-41.5],[175.5,-41],[174,-41],[174,-41.5]]]}
			}]
		}`),
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(testDataConfig(t), nil, nil)
}

func TestEngineFleetSummaryZoneView(t *testing.T) {
	eng := newTestEngine(t)

	summary, err := eng.FleetSummary(model.ZoneView)
	require.NoError(t, err)

	counts, ok := summary["TEST ZONE"]
	require.True(t, ok, "territorial authority must resolve into its zone")
	assert.Equal(t, 1, counts.LightElectric)
	assert.Equal(t, 1, counts.LightCombustion)
	assert.Equal(t, 1, counts.HeavyCombustion)
	assert.Equal(t, counts, summary[model.WholeTerritory])
}

func TestEngineFleetSummaryTerritorialView(t *testing.T) {
	eng := newTestEngine(t)

	summary, err := eng.FleetSummary(model.TerritorialView)
	require.NoError(t, err)
	assert.Contains(t, summary, "WELLINGTON CITY")
	assert.NotContains(t, summary, "TEST ZONE")
}

func TestEngineProfile(t *testing.T) {
	eng := newTestEngine(t)

	// 2025-03-03 is a Monday.
	p, err := eng.Profile("Test Zone", 0, model.ZoneView)
	require.NoError(t, err)
	assert.Equal(t, 500.0, p.Demand[0], "0.5 GWh converts to 500 MWh")
	assert.Equal(t, 1.0, p.Supply[0], "1000 kWh converts to 1 MWh")
	assert.Equal(t, 2.0, p.Supply[1])

	tuesday, err := eng.Profile("Test Zone", 1, model.ZoneView)
	require.NoError(t, err)
	assert.Zero(t, tuesday.Demand[0], "no Tuesday rows means a zero profile")
}

func TestEngineProfileRejectsBadWeekday(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.Profile("Test Zone", 7, model.ZoneView)
	assert.Error(t, err)
}

func TestEngineScenario(t *testing.T) {
	eng := newTestEngine(t)

	params := scenario.Params{
		TargetLightPct: 100,
		Behaviour:      scenario.StatusQuo,
		CompliancePct:  100,
		WindSolarPct:   100,
	}
	res, err := eng.Scenario("Test Zone", 0, model.ZoneView, params)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.NeededLight, "one combustion car left to convert")
	assert.InDelta(t, 0.19*40/1000, res.ExtraDemandMWh, 1e-12)
}

func TestEngineScenarioUnknownRegion(t *testing.T) {
	eng := newTestEngine(t)
	_, err := eng.Scenario("Atlantis", 0, model.ZoneView, scenario.Params{
		Behaviour: scenario.StatusQuo, CompliancePct: 100, WindSolarPct: 100,
	})
	assert.Error(t, err)
}

func TestEngineLocate(t *testing.T) {
	eng := newTestEngine(t)

	name, err := eng.Locate(-41.3, 174.8, model.ZoneView)
	require.NoError(t, err)
	assert.Equal(t, "Test Zone", name)

	_, err = eng.Locate(0, 0, model.ZoneView)
	assert.Error(t, err)
}

func TestEngineMemoizesSummaries(t *testing.T) {
	eng := newTestEngine(t)

	first, err := eng.FleetSummary(model.ZoneView)
	require.NoError(t, err)
	second, err := eng.FleetSummary(model.ZoneView)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, eng.summaries.Len())
}
