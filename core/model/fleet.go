package model

// VehicleRecord is one row of the national motor vehicle register.
// Records are immutable once loaded; classification happens on read.
type VehicleRecord struct {
	SubunitCode   string  // territorial authority code, upper-cased
	MotivePower   string  // as stored in the register, e.g. "ELECTRIC", "PETROL"
	GrossMassKg   float64 // gross vehicle mass
	Make          string
	Model         string
	Year          int
	IndustryClass string
	Region        string // attached during cleaning, upper-cased
}

// FleetCounts holds the four classification buckets for one region.
type FleetCounts struct {
	LightElectric   int `json:"light_electric"`
	HeavyElectric   int `json:"heavy_electric"`
	LightCombustion int `json:"light_combustion"`
	HeavyCombustion int `json:"heavy_combustion"`
}

// Add returns the element-wise sum of two count rows.
func (c FleetCounts) Add(o FleetCounts) FleetCounts {
	return FleetCounts{
		LightElectric:   c.LightElectric + o.LightElectric,
		HeavyElectric:   c.HeavyElectric + o.HeavyElectric,
		LightCombustion: c.LightCombustion + o.LightCombustion,
		HeavyCombustion: c.HeavyCombustion + o.HeavyCombustion,
	}
}

// Electric returns the total electric vehicle count.
func (c FleetCounts) Electric() int { return c.LightElectric + c.HeavyElectric }

// Total returns the total vehicle count across all buckets.
func (c FleetCounts) Total() int {
	return c.LightElectric + c.HeavyElectric + c.LightCombustion + c.HeavyCombustion
}

// WholeTerritory is the reserved key of the synthetic totals row in a
// FleetSummary. It equals the column-wise sum of all regional rows.
const WholeTerritory = "NEW ZEALAND"

// FleetSummary maps an upper-cased region name (or sub-unit code in
// territorial view) to its classification counts.
type FleetSummary map[string]FleetCounts

// RegionMap maps an upper-cased sub-unit code to an upper-cased region name.
// Sub-units with no spatial match are absent.
type RegionMap map[string]string
