// Package fleet classifies vehicle register records and aggregates them
// into per-region fleet composition summaries.
package fleet

import (
	"strings"

	"github.com/nzgridlab/gridsim/core/model"
)

// Plug-in vehicles define the EV boundary for the whole system: battery
// electric and plug-in hybrids count, non-plugin hybrids do not.
var electricMotivePowers = map[string]bool{
	"ELECTRIC":                    true,
	"ELECTRIC [PETROL EXTENDED]":  true,
	"ELECTRIC FUEL CELL HYDROGEN": true,
}

// motiveOther is the register's sentinel for ambiguous records; they are
// dropped during cleaning.
const motiveOther = "OTHER"

// heavyMassKg is the gross vehicle mass threshold separating light from
// heavy vehicles. Exactly 3500 kg is light; only strictly heavier vehicles
// are heavy.
const heavyMassKg = 3500

// Class is the two-axis classification of one vehicle.
type Class struct {
	Electric bool
	Heavy    bool
}

// Classify tags a vehicle electric/combustion and light/heavy. Missing
// motive power classifies as combustion.
func Classify(rec model.VehicleRecord) Class {
	return Class{
		Electric: isElectric(rec.MotivePower),
		Heavy:    rec.GrossMassKg > heavyMassKg,
	}
}

func isElectric(motivePower string) bool {
	if motivePower == "" {
		return false
	}
	if electricMotivePowers[motivePower] {
		return true
	}
	return strings.Contains(motivePower, "PLUGIN")
}
