package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordScenario forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordScenario(ev ScenarioEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordScenario(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordProfileBuild forwards build events to sinks that record them.
func (m *MultiSink) RecordProfileBuild(ev ProfileBuildEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(ProfileBuildRecorder); ok {
			if err := rec.RecordProfileBuild(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordDatasetLoad forwards load events to sinks that record them.
func (m *MultiSink) RecordDatasetLoad(ev DatasetLoadEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(DatasetLoadRecorder); ok {
			if err := rec.RecordDatasetLoad(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
