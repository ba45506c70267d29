// Package region maps territorial authorities to grid regions via spatial
// joins and resolves clicked map coordinates to region names.
package region

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nzgridlab/gridsim/core/geo"
	"github.com/nzgridlab/gridsim/core/model"
)

// OutsideAuthority is the reserved feature name used by the territorial
// authority dataset for coastal water and offshore islands. Selecting it is
// a user error, not a data gap.
const OutsideAuthority = "AREA OUTSIDE TERRITORIAL AUTHORITY"

// ErrOutsideAuthority is returned when a clicked point resolves to the
// reserved outside-authority feature.
var ErrOutsideAuthority = errors.New("selected region is outside any territorial authority")

// ErrNoRegion is returned when a clicked point is not inside any region.
var ErrNoRegion = errors.New("no region contains the selected point")

// overlap sampling grid used to break ties when a sub-unit intersects more
// than one region
const tieBreakGrid = 16

// Resolve performs a left spatial join of sub-unit features onto region
// features and returns the sub-unit code to region name mapping, both
// upper-cased. Region geometries are repaired before testing. A sub-unit
// intersecting several regions is assigned the one with the largest sampled
// overlap, so the result does not depend on feature order. Sub-units with
// no intersecting region are absent from the map.
func Resolve(subunits, regions geo.Collection) model.RegionMap {
	repaired := make([]geo.MultiPolygon, len(regions.Features))
	for i, f := range regions.Features {
		repaired[i] = f.Geometry.Repair()
	}

	out := make(model.RegionMap, len(subunits.Features))
	for _, su := range subunits.Features {
		best := -1
		bestScore := -1
		for i, rg := range repaired {
			if !su.Geometry.Intersects(rg) {
				continue
			}
			score := su.Geometry.OverlapSamples(rg, tieBreakGrid)
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best >= 0 {
			out[strings.ToUpper(su.Name)] = strings.ToUpper(regions.Features[best].Name)
		}
	}
	return out
}

// Locate returns the name of the first region containing the point. The
// reserved outside-authority feature and points in no region at all both
// return errors that should stop the interaction cycle.
func Locate(p geo.Point, regions geo.Collection) (string, error) {
	for _, f := range regions.Features {
		if f.Geometry.ContainsPoint(p) {
			if strings.EqualFold(f.Name, OutsideAuthority) {
				return "", fmt.Errorf("%w: (%f, %f)", ErrOutsideAuthority, p.Y, p.X)
			}
			return f.Name, nil
		}
	}
	return "", fmt.Errorf("%w: (%f, %f)", ErrNoRegion, p.Y, p.X)
}
