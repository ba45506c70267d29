// Package scenario projects the half-hourly electricity demand and supply
// impact of raising EV uptake under a chosen charging behaviour, compliance
// rate and supply expansion mix.
package scenario

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/nzgridlab/gridsim/core/model"
)

// Behaviour names a charging behaviour archetype.
type Behaviour string

const (
	// StatusQuo charges overnight: 18:00-24:00 and 00:00-07:00.
	StatusQuo Behaviour = "status-quo"
	// DaytimePriority charges during working hours: 09:00-17:00.
	DaytimePriority Behaviour = "daytime-priority"
)

// slot windows, 0-based half-hour indices
var behaviourWindows = map[Behaviour][][2]int{
	StatusQuo:       {{36, 48}, {0, 14}},
	DaytimePriority: {{18, 34}},
}

// Weights is a non-negative 48-slot weight sequence summing to 1.
type Weights [model.PeriodsPerDay]float64

func windowWeights(windows [][2]int) Weights {
	var w Weights
	for _, win := range windows {
		for i := win[0]; i < win[1]; i++ {
			w[i] = 1
		}
	}
	w.normalize()
	return w
}

func (w *Weights) normalize() {
	sum := floats.Sum(w[:])
	if sum == 0 {
		return
	}
	floats.Scale(1/sum, w[:])
}

// Sum returns the total weight; 1 for any normalized profile.
func (w Weights) Sum() float64 { return floats.Sum(w[:]) }

// BehaviourProfile returns the normalized charging weight profile of a
// named behaviour.
func BehaviourProfile(b Behaviour) (Weights, error) {
	windows, ok := behaviourWindows[b]
	if !ok {
		return Weights{}, fmt.Errorf("unknown charging behaviour %q", b)
	}
	return windowWeights(windows), nil
}

// NonCompliantProfile is the deterministic charging pattern of owners who
// ignore the selected behaviour: a flat base with an evening peak when
// commuters arrive home and plug straight in (17:00-22:00). An earlier
// variant drew random weights per call; identical inputs must produce
// identical projections, so the fixed pattern is authoritative.
func NonCompliantProfile() Weights {
	var w Weights
	for i := range w {
		w[i] = 1
	}
	for i := 34; i < 44; i++ {
		w[i] = 2
	}
	w.normalize()
	return w
}

// EffectiveProfile blends the behaviour profile with the non-compliant
// pattern by the compliance fraction and renormalizes, so the result sums
// to 1 for any compliance in [0,100].
func EffectiveProfile(b Behaviour, compliancePct float64) (Weights, error) {
	behaviour, err := BehaviourProfile(b)
	if err != nil {
		return Weights{}, err
	}
	nonCompliant := NonCompliantProfile()
	c := compliancePct / 100
	var out Weights
	for i := range out {
		out[i] = c*behaviour[i] + (1-c)*nonCompliant[i]
	}
	out.normalize()
	return out, nil
}
