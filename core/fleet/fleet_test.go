package fleet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nzgridlab/gridsim/core/model"
)

func TestClassifyElectric(t *testing.T) {
	cases := []struct {
		motive string
		want   bool
	}{
		{"ELECTRIC", true},
		{"ELECTRIC [PETROL EXTENDED]", true},
		{"ELECTRIC FUEL CELL HYDROGEN", true},
		{"PLUGIN PETROL HYBRID", true},
		{"PETROL HYBRID", false}, // non-plugin hybrid is not an EV
		{"PETROL", false},
		{"DIESEL", false},
		{"OTHER", false},
		{"", false},
		{"plugin petrol", false}, // substring match is case-sensitive as stored
	}
	for _, c := range cases {
		got := Classify(model.VehicleRecord{MotivePower: c.motive}).Electric
		if got != c.want {
			t.Errorf("Classify(%q).Electric = %v, want %v", c.motive, got, c.want)
		}
	}
}

func TestClassifyMassBoundary(t *testing.T) {
	if Classify(model.VehicleRecord{GrossMassKg: 3500}).Heavy {
		t.Error("3500 kg exactly should classify as light")
	}
	if !Classify(model.VehicleRecord{GrossMassKg: 3501}).Heavy {
		t.Error("3501 kg should classify as heavy")
	}
	if Classify(model.VehicleRecord{GrossMassKg: 0}).Heavy {
		t.Error("missing mass should classify as light")
	}
}

func TestCleanDropsUnusableRecords(t *testing.T) {
	regions := model.RegionMap{"WELLINGTON CITY": "LOWER NORTH ISLAND"}
	records := []model.VehicleRecord{
		{SubunitCode: "Wellington City", MotivePower: "PETROL"},
		{SubunitCode: "Wellington City", MotivePower: "OTHER"},   // sentinel
		{SubunitCode: "Nowhere District", MotivePower: "PETROL"}, // unresolved
	}
	cleaned := Clean(records, regions)

	require.Len(t, cleaned, 1)
	assert.Equal(t, "LOWER NORTH ISLAND", cleaned[0].Region)
	assert.Equal(t, "WELLINGTON CITY", cleaned[0].SubunitCode)
	// input untouched
	assert.Empty(t, records[0].Region)
}

func TestSummarizeTotalsRow(t *testing.T) {
	records := []model.VehicleRecord{
		{Region: "A", MotivePower: "ELECTRIC", GrossMassKg: 1500},
		{Region: "A", MotivePower: "ELECTRIC", GrossMassKg: 5000},
		{Region: "A", MotivePower: "PETROL", GrossMassKg: 1500},
		{Region: "B", MotivePower: "DIESEL", GrossMassKg: 9000},
		{Region: "B", MotivePower: "PLUGIN PETROL HYBRID", GrossMassKg: 1800},
	}
	summary, err := Summarize(records, false)
	require.NoError(t, err)

	var sum model.FleetCounts
	for key, counts := range summary {
		if key == model.WholeTerritory {
			continue
		}
		sum = sum.Add(counts)
	}
	assert.Equal(t, sum, summary[model.WholeTerritory])
	assert.Equal(t, model.FleetCounts{LightElectric: 1, HeavyElectric: 1, LightCombustion: 1}, summary["A"])
	assert.Equal(t, 5, summary[model.WholeTerritory].Total())
}

func TestSummarizeTerritorialViewKeysBySubunit(t *testing.T) {
	records := []model.VehicleRecord{
		{SubunitCode: "WELLINGTON CITY", Region: "LOWER NORTH ISLAND", MotivePower: "ELECTRIC", GrossMassKg: 1500},
	}
	summary, err := Summarize(records, true)
	require.NoError(t, err)
	_, ok := summary["WELLINGTON CITY"]
	assert.True(t, ok, "territorial view groups by sub-unit code")
}

func TestSummarizeEmptyFleet(t *testing.T) {
	_, err := Summarize(nil, false)
	if !errors.Is(err, ErrEmptyFleet) {
		t.Fatalf("expected ErrEmptyFleet, got %v", err)
	}
}

func TestEVShareZeroDenominator(t *testing.T) {
	if got := EVShare(model.FleetCounts{}, false); got != 0 {
		t.Fatalf("share of empty class = %f, want 0", got)
	}
	got := EVShare(model.FleetCounts{LightElectric: 1, LightCombustion: 3}, false)
	if got != 25 {
		t.Fatalf("light share = %f, want 25", got)
	}
}

func TestLightHeavyRatio(t *testing.T) {
	if got := LightHeavyRatio(model.FleetCounts{LightElectric: 10}); got != 0 {
		t.Fatalf("ratio without heavy vehicles = %f, want 0", got)
	}
	got := LightHeavyRatio(model.FleetCounts{LightElectric: 4, LightCombustion: 6, HeavyCombustion: 2})
	if got != 5 {
		t.Fatalf("ratio = %f, want 5", got)
	}
}

func TestMostCommonEV(t *testing.T) {
	records := []model.VehicleRecord{
		{Region: "A", MotivePower: "ELECTRIC", GrossMassKg: 1500, Make: "NISSAN", Model: "LEAF", Year: 2017},
		{Region: "A", MotivePower: "ELECTRIC", GrossMassKg: 1500, Make: "NISSAN", Model: "LEAF", Year: 2017},
		{Region: "A", MotivePower: "ELECTRIC", GrossMassKg: 1500, Make: "TESLA", Model: "MODEL 3", Year: 2021},
		{Region: "B", MotivePower: "ELECTRIC", GrossMassKg: 1500, Make: "TESLA", Model: "MODEL 3", Year: 2021},
	}
	got, ok := MostCommonEV(records, false, "A")
	require.True(t, ok)
	assert.Equal(t, "NISSAN LEAF", got.MakeModel)
	assert.Equal(t, 2017, got.Year)

	// whole territory keeps every region
	got, ok = MostCommonEV(records, false, model.WholeTerritory)
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)

	_, ok = MostCommonEV(records, true, "A")
	assert.False(t, ok, "no heavy EVs registered")
}
