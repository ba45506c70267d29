package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/nzgridlab/gridsim/config"
	"github.com/nzgridlab/gridsim/core/fleet"
	"github.com/nzgridlab/gridsim/core/geo"
	coremetrics "github.com/nzgridlab/gridsim/core/metrics"
	"github.com/nzgridlab/gridsim/core/model"
	"github.com/nzgridlab/gridsim/core/profile"
	"github.com/nzgridlab/gridsim/core/region"
	"github.com/nzgridlab/gridsim/core/scenario"
	"github.com/nzgridlab/gridsim/infra/logger"
	"github.com/nzgridlab/gridsim/internal/memo"
	"github.com/nzgridlab/gridsim/loader"
)

// Engine owns the loaded source data and the memoized intermediate tables,
// and answers the queries the API exposes. All intermediates are pure
// functions of their inputs; the scenario projection is cheap and always
// recomputed.
type Engine struct {
	log  logger.Logger
	sink coremetrics.MetricsSink

	fleetRecords []model.VehicleRecord
	fleetDS      loader.Dataset
	genRows      []model.GenerationRow
	genDS        loader.Dataset
	demandZone   []model.DemandRow
	demandZoneDS loader.Dataset
	demandNode   []model.DemandRow
	demandNodeDS loader.Dataset
	network      []model.NetworkPoint
	networkDS    loader.Dataset
	zones        geo.Collection
	zonesDS      loader.Dataset
	tas          geo.Collection
	tasDS        loader.Dataset

	regionMaps *memo.Cache[model.RegionMap]
	fleets     *memo.Cache[[]model.VehicleRecord]
	summaries  *memo.Cache[model.FleetSummary]
	matrices   *memo.Cache[model.TradingPeriodMatrix]
}

// NewEngine loads every source file and prepares the caches. Data-quality
// problems are logged and degrade to empty tables; only configuration
// errors are fatal.
func NewEngine(cfg config.DataConfig, log logger.Logger, sink coremetrics.MetricsSink) *Engine {
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	ld := loader.Loader{Log: log}

	e := &Engine{
		log:        log,
		sink:       sink,
		regionMaps: memo.New[model.RegionMap](),
		fleets:     memo.New[[]model.VehicleRecord](),
		summaries:  memo.New[model.FleetSummary](),
		matrices:   memo.New[model.TradingPeriodMatrix](),
	}
	e.fleetRecords, e.fleetDS = ld.FleetRecords(cfg.Fleet)
	e.genRows, e.genDS = ld.GenerationRows(cfg.Generation)
	e.demandZone, e.demandZoneDS = ld.DemandRows(cfg.DemandZone, cfg.DemandSkipRows)
	if cfg.DemandNode != "" {
		e.demandNode, e.demandNodeDS = ld.DemandRows(cfg.DemandNode, cfg.DemandSkipRows)
	}
	e.network, e.networkDS = ld.NetworkPoints(cfg.Network)
	e.zones, e.zonesDS = ld.Boundaries(cfg.ZoneBoundaries, "Region")
	e.tas, e.tasDS = ld.Boundaries(cfg.TABoundaries, "TA2025_V_1")

	for _, ds := range []struct {
		name string
		d    loader.Dataset
	}{
		{"fleet", e.fleetDS}, {"generation", e.genDS},
		{"demand_zone", e.demandZoneDS}, {"demand_node", e.demandNodeDS},
		{"network", e.networkDS}, {"zones", e.zonesDS}, {"tas", e.tasDS},
	} {
		if ds.d.Path == "" {
			continue
		}
		if err := recordDatasetLoad(sink, ds.name, ds.d); err != nil {
			log.Warnf("record dataset load: %v", err)
		}
	}
	return e
}

func recordDatasetLoad(sink coremetrics.MetricsSink, name string, ds loader.Dataset) error {
	rec, ok := sink.(coremetrics.DatasetLoadRecorder)
	if !ok {
		return nil
	}
	return rec.RecordDatasetLoad(coremetrics.DatasetLoadEvent{Name: name, Rows: ds.Rows, Time: time.Now()})
}

// boundaries returns the region collection of the view.
func (e *Engine) boundaries(view model.View) geo.Collection {
	if view == model.TerritorialView {
		return e.tas
	}
	return e.zones
}

// regionMap resolves sub-units against the view's regions. In territorial
// view every territorial authority is its own region.
func (e *Engine) regionMap(view model.View) model.RegionMap {
	key := memo.Key("region-map", e.tasDS.ID.String(), e.zonesDS.ID.String(), string(view))
	return e.regionMaps.GetOrCompute(key, func() model.RegionMap {
		if view == model.TerritorialView {
			m := make(model.RegionMap, len(e.tas.Features))
			for _, f := range e.tas.Features {
				m[strings.ToUpper(f.Name)] = strings.ToUpper(f.Name)
			}
			return m
		}
		return region.Resolve(e.tas, e.zones)
	})
}

// cleanedFleet returns the fleet records with regions attached for the view.
func (e *Engine) cleanedFleet(view model.View) []model.VehicleRecord {
	key := memo.Key("fleet-clean", e.fleetDS.ID.String(), e.tasDS.ID.String(), e.zonesDS.ID.String(), string(view))
	return e.fleets.GetOrCompute(key, func() []model.VehicleRecord {
		return fleet.Clean(e.fleetRecords, e.regionMap(view))
	})
}

// FleetSummary returns the per-region fleet composition for the view.
func (e *Engine) FleetSummary(view model.View) (model.FleetSummary, error) {
	key := memo.Key("fleet-summary", e.fleetDS.ID.String(), e.tasDS.ID.String(), e.zonesDS.ID.String(), string(view))
	if s, ok := e.summaries.Get(key); ok {
		return s, nil
	}
	s, err := fleet.Summarize(e.cleanedFleet(view), view == model.TerritorialView)
	if err != nil {
		return nil, err
	}
	e.summaries.Put(key, s)
	return s, nil
}

func (e *Engine) supplyMatrix(view model.View) model.TradingPeriodMatrix {
	key := memo.Key("supply-matrix", e.genDS.ID.String(), e.networkDS.ID.String(), e.boundaryID(view), string(view))
	return e.matrices.GetOrCompute(key, func() model.TradingPeriodMatrix {
		start := time.Now()
		m := profile.Builder{Log: e.log}.BuildSupplyMatrix(e.genRows, e.network, e.boundaries(view))
		e.recordBuild("supply", view, len(m.Rows), time.Since(start))
		return m
	})
}

func (e *Engine) demandMatrix(view model.View) model.TradingPeriodMatrix {
	rows, ds := e.demandZone, e.demandZoneDS
	if view == model.TerritorialView {
		rows, ds = e.demandNode, e.demandNodeDS
	}
	key := memo.Key("demand-matrix", ds.ID.String(), e.networkDS.ID.String(), e.boundaryID(view), string(view))
	return e.matrices.GetOrCompute(key, func() model.TradingPeriodMatrix {
		start := time.Now()
		m := profile.Builder{Log: e.log}.BuildDemandMatrix(rows, e.network, e.boundaries(view), view == model.TerritorialView)
		e.recordBuild("demand", view, len(m.Rows), time.Since(start))
		return m
	})
}

func (e *Engine) boundaryID(view model.View) string {
	if view == model.TerritorialView {
		return e.tasDS.ID.String()
	}
	return e.zonesDS.ID.String()
}

func (e *Engine) recordBuild(kind string, view model.View, rows int, d time.Duration) {
	rec, ok := e.sink.(coremetrics.ProfileBuildRecorder)
	if !ok {
		return
	}
	ev := coremetrics.ProfileBuildEvent{Kind: kind, View: string(view), Rows: rows, Duration: d, Time: time.Now()}
	if err := rec.RecordProfileBuild(ev); err != nil {
		e.log.Warnf("record profile build: %v", err)
	}
}

// Profile returns the weekday-average demand/supply profile pair for the
// region. Unknown regions degrade to zero profiles, matching the behaviour
// of an empty matrix selection.
func (e *Engine) Profile(regionName string, weekday int, view model.View) (model.DayProfile, error) {
	if weekday < 0 || weekday > 6 {
		return model.DayProfile{}, fmt.Errorf("weekday must be in [0,6], got %d", weekday)
	}
	return profile.DayProfile(e.demandMatrix(view), e.supplyMatrix(view), regionName, weekday), nil
}

// Locate resolves a clicked WGS84 coordinate to a region of the view.
func (e *Engine) Locate(lat, lon float64, view model.View) (string, error) {
	return region.Locate(geo.Point{X: lon, Y: lat}, e.boundaries(view))
}

// Scenario projects EV uptake effects onto the region's baseline profile
// and reports the result to the metrics sink.
func (e *Engine) Scenario(regionName string, weekday int, view model.View, params scenario.Params) (scenario.Result, error) {
	start := time.Now()
	summary, err := e.FleetSummary(view)
	if err != nil {
		return scenario.Result{}, err
	}
	counts, ok := summary[strings.ToUpper(regionName)]
	if !ok {
		return scenario.Result{}, fmt.Errorf("no fleet data for region %q", regionName)
	}
	baseline, err := e.Profile(regionName, weekday, view)
	if err != nil {
		return scenario.Result{}, err
	}
	res, err := scenario.Project(baseline, counts, params)
	if err != nil {
		return scenario.Result{}, err
	}

	ev := coremetrics.ScenarioEvent{
		Region:         strings.ToUpper(regionName),
		Weekday:        weekday,
		Behaviour:      string(params.Behaviour),
		CompliancePct:  params.CompliancePct,
		ExpansionPct:   params.ExpansionPct,
		ExtraDemandMWh: res.ExtraDemandMWh,
		MeanRatio:      res.MeanRatio,
		Duration:       time.Since(start),
		Time:           time.Now(),
	}
	if err := e.sink.RecordScenario(ev); err != nil {
		e.log.Warnf("record scenario: %v", err)
	}
	return res, nil
}

// MostCommonEV reports the most registered EV make and model of a class in
// the region, using the zone-view cleaned fleet.
func (e *Engine) MostCommonEV(regionName string, heavy bool, view model.View) (fleet.CommonEV, bool) {
	return fleet.MostCommonEV(e.cleanedFleet(view), heavy, strings.ToUpper(regionName))
}
