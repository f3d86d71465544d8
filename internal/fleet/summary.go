package fleet

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EtaStats aggregates the last-computed travel estimates across the fleet.
// Estimates are stale until the next refresh; the stats describe the most
// recent target only.
type EtaStats struct {
	MeanMinutes float64 `json:"meanMinutes"`
	MinMinutes  float64 `json:"minMinutes"`
	MaxMinutes  float64 `json:"maxMinutes"`
}

// Summary is a fleet-wide availability overview.
type Summary struct {
	Total     int            `json:"total"`
	Available int            `json:"available"`
	EnRoute   int            `json:"enRoute"`
	ByType    map[string]int `json:"byType"`
	Eta       *EtaStats      `json:"eta,omitempty"`
}

// Summarize computes availability counts and ETA statistics over vehicles
// that currently carry an estimate.
func (r *Registry) Summarize() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := Summary{
		Total:  len(r.vehicles),
		ByType: make(map[string]int),
	}

	var etas []float64
	for _, v := range r.vehicles {
		summary.ByType[v.Type]++
		if v.Available {
			summary.Available++
		} else {
			summary.EnRoute++
		}
		if v.EtaMinutes > 0 {
			etas = append(etas, v.EtaMinutes)
		}
	}

	if len(etas) > 0 {
		summary.Eta = &EtaStats{
			MeanMinutes: stat.Mean(etas, nil),
			MinMinutes:  floats.Min(etas),
			MaxMinutes:  floats.Max(etas),
		}
	}

	return summary
}
