package model

// GenerationRow is one raw generation record: a trading date, the grid
// point-of-connection it was metered at, and up to 50 period columns in kWh.
// The period values are filled from the TPn columns by the loader; TP49 and
// TP50 only exist on daylight-saving switch days and are discarded later.
type GenerationRow struct {
	TradingDate string      `csv:"Trading_Date"`
	POCCode     string      `csv:"POC_Code"`
	PeriodsKWh  [50]float64 `csv:"-"`
}

// DemandRow is one raw demand record. PeriodStart combines the trading date
// and period index in a single string and is split during matrix building.
type DemandRow struct {
	PeriodStart string  `csv:"Period start"`
	Region      string  `csv:"Region"`
	RegionID    string  `csv:"Region ID"`
	DemandGWh   float64 `csv:"Demand (GWh)"`
}

// NetworkPoint maps a point-of-connection code to its projected NZTM
// coordinate pair. Zero coordinates mean the table had none for the code.
type NetworkPoint struct {
	POCCode  string
	Easting  float64
	Northing float64
}
