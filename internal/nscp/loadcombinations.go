package nscp

import (
	"fmt"
	"math"
	"strings"
)

// Load case names accepted in model files
const (
	CaseDead       = "dead"
	CaseLive       = "live"
	CaseRoof       = "roof"
	CaseWind       = "wind"
	CaseEarthquake = "earthquake"
	CaseRain       = "rain"
)

// Cases lists the load cases in the order they appear in a combination
var Cases = []string{CaseDead, CaseLive, CaseRoof, CaseWind, CaseEarthquake, CaseRain}

// CaseSymbols are the NSCP symbols of Cases
var CaseSymbols = []string{"D", "L", "Lr", "W", "E", "R"}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L + 0.5(Lr or R)", Dead: 1.2, Live: 1.6, Roof: 0.5, Rain: 0.5},
	{ID: "3", Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)", Dead: 1.2, Live: 1.0, Roof: 1.6, Rain: 1.6, Wind: 0.5},
	{ID: "4", Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)", Dead: 1.2, Live: 1.0, Wind: 1.0, Roof: 0.5, Rain: 0.5},
	{ID: "5", Description: "1.2D + 1.0E + 1.0L", Dead: 1.2, Live: 1.0, Earthquake: 1.0},
	{ID: "6", Description: "0.9D + 1.0W", Dead: 0.9, Wind: 1.0},
	{ID: "7", Description: "0.9D + 1.0E", Dead: 0.9, Earthquake: 1.0},
}

// SimplifiedCombinations for gravity-only frames
var SimplifiedCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Dead: 1.4},
	{ID: "2", Description: "1.2D + 1.6L", Dead: 1.2, Live: 1.6},
}

// Service applies every load case unfactored
var Service = LoadCombination{
	ID:          "S",
	Description: "D + L + Lr + W + E + R",
	Dead:        1,
	Live:        1,
	Roof:        1,
	Wind:        1,
	Earthquake:  1,
	Rain:        1,
}

// Factor returns the load factor the combination applies to a load case.
// An empty case name is treated as dead load.
func (lc LoadCombination) Factor(loadCase string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(loadCase)) {
	case "", CaseDead, "d":
		return lc.Dead, nil
	case CaseLive, "l":
		return lc.Live, nil
	case CaseRoof, "lr":
		return lc.Roof, nil
	case CaseWind, "w":
		return lc.Wind, nil
	case CaseEarthquake, "e":
		return lc.Earthquake, nil
	case CaseRain, "r":
		return lc.Rain, nil
	}
	return 0, fmt.Errorf("unknown load case %q", loadCase)
}

// Find returns the combination with the given ID
func Find(id string, combinations []LoadCombination) (LoadCombination, bool) {
	if strings.EqualFold(id, Service.ID) {
		return Service, true
	}
	for _, c := range combinations {
		if c.ID == id {
			return c, true
		}
	}
	return LoadCombination{}, false
}

// Governing evaluates each combination and returns the one producing the
// largest absolute value.
func Governing(combinations []LoadCombination, eval func(LoadCombination) (float64, error)) (float64, LoadCombination, error) {
	var (
		maxValue  float64
		governing LoadCombination
	)
	for i, combo := range combinations {
		v, err := eval(combo)
		if err != nil {
			return 0, combo, fmt.Errorf("combination %s: %w", combo.ID, err)
		}
		if i == 0 || math.Abs(v) > math.Abs(maxValue) {
			maxValue = v
			governing = combo
		}
	}
	return maxValue, governing, nil
}
