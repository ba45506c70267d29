package metrics

import "testing"

type recordSink struct {
	scenarios int
	builds    int
}

func (r *recordSink) RecordScenario(ScenarioEvent) error { r.scenarios++; return nil }

func (r *recordSink) RecordProfileBuild(ProfileBuildEvent) error { r.builds++; return nil }

func TestMultiSinkForwards(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordScenario(ScenarioEvent{}); err != nil {
		t.Fatalf("record scenario: %v", err)
	}
	if err := m.RecordProfileBuild(ProfileBuildEvent{}); err != nil {
		t.Fatalf("record build: %v", err)
	}
	if s1.scenarios != 1 || s2.scenarios != 1 || s1.builds != 1 || s2.builds != 1 {
		t.Fatalf("events not forwarded to all sinks")
	}
}

func TestMultiSinkNopMembers(t *testing.T) {
	m := NewMultiSink(NopSink{})
	if err := m.RecordProfileBuild(ProfileBuildEvent{}); err != nil {
		t.Fatalf("record build through nop: %v", err)
	}
}
