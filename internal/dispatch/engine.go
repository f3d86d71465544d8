// Package dispatch orchestrates location resolution, ETA estimation, and
// vehicle state transitions for dispatch decisions.
package dispatch

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/karthikbm/lifeline/internal/directory"
	"github.com/karthikbm/lifeline/internal/fleet"
	"github.com/karthikbm/lifeline/internal/geo"
	"github.com/karthikbm/lifeline/internal/models"
)

var (
	// ErrLocationNotFound means the phone number has no known location.
	ErrLocationNotFound = errors.New("emergency location not found")
	// ErrVehicleNotFound means the vehicle id is not in the registry.
	ErrVehicleNotFound = errors.New("vehicle not found")
)

// EtaResult is a computed travel estimate. A zero result means the
// estimate is not applicable (missing or malformed coordinates), not an
// instant arrival.
type EtaResult struct {
	Minutes    float64 `json:"etaMinutes"`
	DistanceKm float64 `json:"distanceKm"`
}

// DispatchResult is the outcome of a successful dispatch: the estimate
// and the vehicle snapshot taken after the availability transition.
type DispatchResult struct {
	DispatchID uuid.UUID      `json:"dispatchId"`
	EtaMinutes float64        `json:"eta"`
	Vehicle    models.Vehicle `json:"vehicle"`
}

// Engine composes the registry and directory. It holds no vehicle or
// location state of its own; the journal records outcomes only.
type Engine struct {
	registry  *fleet.Registry
	directory *directory.Directory
	journal   *Journal
	speedKmh  float64
}

// NewEngine creates a dispatch engine. A non-positive speed falls back to
// the default responder speed.
func NewEngine(registry *fleet.Registry, dir *directory.Directory, journal *Journal, speedKmh float64) *Engine {
	if speedKmh <= 0 {
		speedKmh = geo.DefaultSpeedKmh
	}
	return &Engine{
		registry:  registry,
		directory: dir,
		journal:   journal,
		speedKmh:  speedKmh,
	}
}

// ComputeEta estimates travel time from a vehicle to a target and records
// the estimate on the vehicle. Bad coordinates on either side degrade to
// a zero result, never an error.
func (e *Engine) ComputeEta(v models.Vehicle, target models.Coordinate) EtaResult {
	dist := geo.DistanceKm(v.Location, target)
	result := EtaResult{
		Minutes:    geo.EtaMinutes(dist, e.speedKmh),
		DistanceKm: dist,
	}
	e.registry.ApplyEta(v.ID, result.Minutes, result.DistanceKm)
	return result
}

// BatchEta computes and applies estimates for the requested vehicles,
// preserving registry order. Unknown ids are skipped, and one vehicle with
// bad coordinates never fails the rest of the batch.
func (e *Engine) BatchEta(vehicleIDs []string, target models.Coordinate) []models.EtaSummary {
	requested := make(map[string]bool, len(vehicleIDs))
	for _, id := range vehicleIDs {
		requested[id] = true
	}

	summaries := []models.EtaSummary{}
	for _, v := range e.registry.All() {
		if !requested[v.ID] {
			continue
		}
		result := e.ComputeEta(v, target)
		summaries = append(summaries, models.EtaSummary{
			VehicleID:   v.ID,
			VehicleName: v.Name,
			VehicleType: v.Type,
			EtaMinutes:  result.Minutes,
			Status:      v.Status,
			Available:   v.Available,
			Services:    v.Services,
		})
	}
	return summaries
}

// RefreshEtas recomputes every vehicle's estimate against a target. This
// backs the documented side effect of location resolution: fetching a
// caller's location refreshes all displayed ETAs.
func (e *Engine) RefreshEtas(target models.Coordinate) {
	for _, v := range e.registry.All() {
		e.ComputeEta(v, target)
	}
}

// DispatchToPhone assigns a vehicle to the emergency at a caller's known
// location. The estimate is computed and written before the availability
// transition so the returned snapshot carries both.
func (e *Engine) DispatchToPhone(vehicleID, phone string) (DispatchResult, error) {
	record, found := e.directory.Resolve(phone)
	if !found {
		return DispatchResult{}, ErrLocationNotFound
	}

	v, found := e.registry.Get(vehicleID)
	if !found {
		return DispatchResult{}, ErrVehicleNotFound
	}

	eta := e.ComputeEta(v, record.Coordinate)
	dispatched, _ := e.registry.Dispatch(vehicleID)

	result := DispatchResult{
		DispatchID: uuid.New(),
		EtaMinutes: eta.Minutes,
		Vehicle:    dispatched,
	}

	e.journal.Append(models.DispatchRecord{
		ID:           result.DispatchID,
		VehicleID:    dispatched.ID,
		VehicleName:  dispatched.Name,
		Phone:        phone,
		Address:      record.Address,
		Target:       record.Coordinate,
		EtaMinutes:   eta.Minutes,
		DistanceKm:   eta.DistanceKm,
		DispatchedAt: time.Now().UTC(),
	})

	log.WithFields(log.Fields{
		"vehicle": dispatched.ID,
		"phone":   phone,
		"eta":     eta.Minutes,
	}).Info("[dispatch] vehicle dispatched")

	return result, nil
}

// Release returns a vehicle to the available pool
func (e *Engine) Release(vehicleID string) (models.Vehicle, bool) {
	return e.registry.Release(vehicleID)
}

// Recent returns the newest dispatch journal entries
func (e *Engine) Recent(limit int) []models.DispatchRecord {
	return e.journal.Recent(limit)
}
