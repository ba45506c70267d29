package metrics

import "time"

// ScenarioEvent captures one scenario projection for observability.
type ScenarioEvent struct {
	Region         string
	Weekday        int
	Behaviour      string
	CompliancePct  float64
	ExpansionPct   float64
	ExtraDemandMWh float64
	MeanRatio      float64
	Duration       time.Duration
	Time           time.Time
}

// ProfileBuildEvent captures one matrix build pass.
type ProfileBuildEvent struct {
	Kind     string // "supply" or "demand"
	View     string // "zone" or "territorial"
	Rows     int
	Duration time.Duration
	Time     time.Time
}

// DatasetLoadEvent captures one source file load.
type DatasetLoadEvent struct {
	Name string
	Rows int
	Time time.Time
}

// MetricsSink records engine events for observability purposes.
type MetricsSink interface {
	RecordScenario(ev ScenarioEvent) error
}

// ProfileBuildRecorder records matrix build passes.
type ProfileBuildRecorder interface {
	RecordProfileBuild(ev ProfileBuildEvent) error
}

// DatasetLoadRecorder records source file loads.
type DatasetLoadRecorder interface {
	RecordDatasetLoad(ev DatasetLoadEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordScenario(ScenarioEvent) error         { return nil }
func (NopSink) RecordProfileBuild(ProfileBuildEvent) error { return nil }
func (NopSink) RecordDatasetLoad(DatasetLoadEvent) error   { return nil }
