package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/nzgridlab/gridsim/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	ev := coremetrics.ScenarioEvent{
		Region:         "LOWER NORTH ISLAND",
		Behaviour:      "status-quo",
		ExtraDemandMWh: 12.5,
		MeanRatio:      0.8,
		Duration:       3 * time.Millisecond,
		Time:           time.Now(),
	}
	if err := sink.RecordScenario(ev); err != nil {
		t.Fatalf("record scenario: %v", err)
	}
	if err := sink.RecordProfileBuild(coremetrics.ProfileBuildEvent{Kind: "supply", View: "zone"}); err != nil {
		t.Fatalf("record build: %v", err)
	}
	if err := sink.RecordDatasetLoad(coremetrics.DatasetLoadEvent{Name: "fleet", Rows: 100}); err != nil {
		t.Fatalf("record load: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"gridsim_scenarios_total",
		"gridsim_scenario_duration_seconds",
		"gridsim_profile_builds_total",
		"gridsim_dataset_rows",
	} {
		if !names[want] {
			t.Errorf("metric %s not gathered", want)
		}
	}
}

func TestPromSinkDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second register should reuse collectors: %v", err)
	}
}
