package model

import (
	"fmt"
	"strings"
)

// View selects the geographic grouping of derived tables.
type View string

const (
	// ZoneView groups by electricity grid zone.
	ZoneView View = "zone"
	// TerritorialView groups by territorial authority.
	TerritorialView View = "territorial"
)

// ParseView validates a view query value; empty means zone view.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(s)) {
	case "", ZoneView:
		return ZoneView, nil
	case TerritorialView:
		return TerritorialView, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}
