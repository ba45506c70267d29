package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/nzgridlab/gridsim/core/metrics"
)

// PromSink records engine events in Prometheus metrics.
type PromSink struct {
	scenarios *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	extraMWh  prometheus.Gauge
	meanRatio prometheus.Gauge
	builds    *prometheus.CounterVec
	datasets  *prometheus.GaugeVec
}

// NewPromSink registers engine metrics on the default Prometheus registerer.
// The /metrics server is started separately with the configured port.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		scenarios: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridsim_scenarios_total",
			Help: "Total number of scenario projections computed",
		}, []string{"region", "behaviour"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gridsim_scenario_duration_seconds",
			Help:    "Time spent computing a scenario projection",
			Buckets: prometheus.DefBuckets,
		}, []string{"behaviour"}),
		extraMWh: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gridsim_last_extra_demand_mwh",
			Help: "Extra daily demand of the most recent scenario in MWh",
		}),
		meanRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gridsim_last_mean_demand_supply_ratio",
			Help: "Mean demand/supply ratio of the most recent scenario",
		}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gridsim_profile_builds_total",
			Help: "Total number of trading period matrix builds",
		}, []string{"kind", "view"}),
		datasets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gridsim_dataset_rows",
			Help: "Row count of each loaded source dataset",
		}, []string{"dataset"}),
	}
	collectors := []prometheus.Collector{
		s.scenarios, s.duration, s.extraMWh, s.meanRatio, s.builds, s.datasets,
	}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				collectors[i] = are.ExistingCollector
				continue
			}
			return nil, err
		}
	}
	s.scenarios = collectors[0].(*prometheus.CounterVec)
	s.duration = collectors[1].(*prometheus.HistogramVec)
	s.extraMWh = collectors[2].(prometheus.Gauge)
	s.meanRatio = collectors[3].(prometheus.Gauge)
	s.builds = collectors[4].(*prometheus.CounterVec)
	s.datasets = collectors[5].(*prometheus.GaugeVec)
	return s, nil
}

// RecordScenario updates the scenario counters and gauges.
func (s *PromSink) RecordScenario(ev coremetrics.ScenarioEvent) error {
	s.scenarios.WithLabelValues(ev.Region, ev.Behaviour).Inc()
	s.duration.WithLabelValues(ev.Behaviour).Observe(ev.Duration.Seconds())
	s.extraMWh.Set(ev.ExtraDemandMWh)
	s.meanRatio.Set(ev.MeanRatio)
	return nil
}

// RecordProfileBuild counts matrix builds per kind and view.
func (s *PromSink) RecordProfileBuild(ev coremetrics.ProfileBuildEvent) error {
	s.builds.WithLabelValues(ev.Kind, ev.View).Inc()
	return nil
}

// RecordDatasetLoad tracks source dataset sizes.
func (s *PromSink) RecordDatasetLoad(ev coremetrics.DatasetLoadEvent) error {
	s.datasets.WithLabelValues(ev.Name).Set(float64(ev.Rows))
	return nil
}
