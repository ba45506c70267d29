package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nzgridlab/gridsim/core/geo"
)

// geoJSON mirrors the subset of the GeoJSON FeatureCollection schema the
// boundary files use.
type geoJSON struct {
	Type     string `json:"type"`
	Features []struct {
		Properties map[string]any `json:"properties"`
		Geometry   struct {
			Type        string          `json:"type"`
			Coordinates json.RawMessage `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// nameProperties are tried in order when naming a boundary feature. Grid
// zone files use "Region"; territorial authority files use the TA2025
// attribute pair.
var nameProperties = []string{"Region", "TA2025_V_1", "TA2025_V_2"}

// Boundaries loads a GeoJSON FeatureCollection of region or territorial
// authority polygons. Unreadable files yield an empty collection and a
// warning. nameProp selects the property holding the feature name; an
// empty nameProp falls back through the known boundary attributes.
func (l Loader) Boundaries(path, nameProp string) (geo.Collection, Dataset) {
	ds := l.dataset(path)
	data, err := os.ReadFile(path)
	if err != nil {
		l.warnf("boundary file %s unreadable: %v", path, err)
		return geo.Collection{}, ds
	}
	var gj geoJSON
	if err := json.Unmarshal(data, &gj); err != nil {
		l.warnf("boundary file %s malformed: %v", path, err)
		return geo.Collection{}, ds
	}

	var out geo.Collection
	for i, f := range gj.Features {
		name := featureName(f.Properties, nameProp)
		if name == "" {
			l.warnf("boundary file %s: feature %d has no name property, skipped", path, i)
			continue
		}
		mp, err := decodeGeometry(f.Geometry.Type, f.Geometry.Coordinates)
		if err != nil {
			l.warnf("boundary file %s: feature %q: %v", path, name, err)
			continue
		}
		out.Features = append(out.Features, geo.Feature{Name: name, Geometry: mp})
	}
	ds.Rows = len(out.Features)
	return out, ds
}

func featureName(props map[string]any, nameProp string) string {
	keys := nameProperties
	if nameProp != "" {
		keys = []string{nameProp}
	}
	for _, k := range keys {
		if v, ok := props[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func decodeGeometry(geomType string, raw json.RawMessage) (geo.MultiPolygon, error) {
	switch geomType {
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(raw, &rings); err != nil {
			return nil, fmt.Errorf("polygon coordinates: %w", err)
		}
		return geo.MultiPolygon{toPolygon(rings)}, nil
	case "MultiPolygon":
		var polys [][][][]float64
		if err := json.Unmarshal(raw, &polys); err != nil {
			return nil, fmt.Errorf("multipolygon coordinates: %w", err)
		}
		mp := make(geo.MultiPolygon, 0, len(polys))
		for _, rings := range polys {
			mp = append(mp, toPolygon(rings))
		}
		return mp, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", geomType)
	}
}

func toPolygon(rings [][][]float64) geo.Polygon {
	var py geo.Polygon
	for i, ring := range rings {
		r := make(geo.Ring, 0, len(ring))
		for _, pos := range ring {
			if len(pos) < 2 {
				continue
			}
			r = append(r, geo.Point{X: pos[0], Y: pos[1]})
		}
		if i == 0 {
			py.Shell = r
		} else {
			py.Holes = append(py.Holes, r)
		}
	}
	return py
}
