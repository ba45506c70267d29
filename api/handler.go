// Package api exposes the analysis engine over HTTP as JSON endpoints
// shaped for charting: 48 half-hourly values with matching HH:MM labels.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/nzgridlab/gridsim/core/fleet"
	"github.com/nzgridlab/gridsim/core/logger"
	"github.com/nzgridlab/gridsim/core/model"
	"github.com/nzgridlab/gridsim/core/region"
	"github.com/nzgridlab/gridsim/core/scenario"
)

// Engine is the query surface the handlers serve.
type Engine interface {
	FleetSummary(view model.View) (model.FleetSummary, error)
	Profile(region string, weekday int, view model.View) (model.DayProfile, error)
	Scenario(region string, weekday int, view model.View, p scenario.Params) (scenario.Result, error)
	Locate(lat, lon float64, view model.View) (string, error)
	MostCommonEV(region string, heavy bool, view model.View) (fleet.CommonEV, bool)
}

// Handler serves the JSON API.
type Handler struct {
	engine Engine
	log    logger.Logger
}

// NewHandler wraps an engine for HTTP serving.
func NewHandler(engine Engine, log logger.Logger) *Handler {
	return &Handler{engine: engine, log: log}
}

// Routes returns the API mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/fleet/summary", h.fleetSummary)
	mux.HandleFunc("/api/profile", h.profile)
	mux.HandleFunc("/api/scenario", h.scenario)
	mux.HandleFunc("/api/region/locate", h.locate)
	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func queryView(r *http.Request) (model.View, error) {
	return model.ParseView(r.URL.Query().Get("view"))
}

func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func (h *Handler) fleetSummary(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	view, err := queryView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	summary, err := h.engine.FleetSummary(view)
	if err != nil {
		h.log.Errorf("fleet summary: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type profileResponse struct {
	Region    string                       `json:"region"`
	Weekday   int                          `json:"weekday"`
	Times     []string                     `json:"times"`
	Demand    [model.PeriodsPerDay]float64 `json:"demand"`
	Supply    [model.PeriodsPerDay]float64 `json:"supply"`
	CommonEVs map[string]fleet.CommonEV    `json:"common_evs,omitempty"`
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	view, err := queryView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	regionName := r.URL.Query().Get("region")
	if regionName == "" {
		regionName = model.WholeTerritory
	}
	weekday, err := queryInt(r, "weekday", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := h.engine.Profile(regionName, weekday, view)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	resp := profileResponse{
		Region:  regionName,
		Weekday: weekday,
		Times:   model.SlotTimes(),
		Demand:  p.Demand,
		Supply:  p.Supply,
	}
	resp.CommonEVs = map[string]fleet.CommonEV{}
	if ev, ok := h.engine.MostCommonEV(regionName, false, view); ok {
		resp.CommonEVs["light"] = ev
	}
	if ev, ok := h.engine.MostCommonEV(regionName, true, view); ok {
		resp.CommonEVs["heavy"] = ev
	}
	writeJSON(w, http.StatusOK, resp)
}

type scenarioResponse struct {
	Region  string          `json:"region"`
	Weekday int             `json:"weekday"`
	Times   []string        `json:"times"`
	Result  scenario.Result `json:"result"`
}

func (h *Handler) scenario(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	view, err := queryView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	regionName := r.URL.Query().Get("region")
	if regionName == "" {
		regionName = model.WholeTerritory
	}
	weekday, err := queryInt(r, "weekday", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	params := scenario.Params{Behaviour: scenario.StatusQuo}
	if b := r.URL.Query().Get("behaviour"); b != "" {
		params.Behaviour = scenario.Behaviour(b)
	}
	for _, q := range []struct {
		name string
		dst  *float64
		def  float64
	}{
		{"lightPct", &params.TargetLightPct, 0},
		{"heavyPct", &params.TargetHeavyPct, 0},
		{"compliance", &params.CompliancePct, 100},
		{"expansion", &params.ExpansionPct, 0},
		{"windSolar", &params.WindSolarPct, 100},
	} {
		v, err := queryFloat(r, q.name, q.def)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		*q.dst = v
	}
	res, err := h.engine.Scenario(regionName, weekday, view, params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, scenarioResponse{
		Region:  regionName,
		Weekday: weekday,
		Times:   model.SlotTimes(),
		Result:  res,
	})
}

type locateResponse struct {
	Region string `json:"region"`
}

func (h *Handler) locate(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	view, err := queryView(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	lat, err := queryFloat(r, "lat", 0)
	if err == nil && r.URL.Query().Get("lat") == "" {
		err = errors.New("lat is required")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	lon, err := queryFloat(r, "lon", 0)
	if err == nil && r.URL.Query().Get("lon") == "" {
		err = errors.New("lon is required")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	name, err := h.engine.Locate(lat, lon, view)
	if err != nil {
		if errors.Is(err, region.ErrOutsideAuthority) || errors.Is(err, region.ErrNoRegion) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		h.log.Errorf("locate: %v", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, locateResponse{Region: name})
}
