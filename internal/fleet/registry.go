// Package fleet owns the authoritative in-memory set of response vehicles
package fleet

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/karthikbm/lifeline/internal/geo"
	"github.com/karthikbm/lifeline/internal/models"
)

// Registry holds the vehicle fleet. Membership is fixed after load;
// vehicle state (status, position, ETA) is mutated through Registry
// methods only, under a single coarse lock. Reads hand out copies.
type Registry struct {
	vehicles []models.Vehicle
	index    map[string]int
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

type catalogFile struct {
	Vehicles []catalogEntry `json:"vehicles"`
}

type catalogEntry struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Location models.Coordinate `json:"location"`
	Services []string          `json:"services"`
}

// Load reads the vehicle catalog from a JSON file. Every vehicle starts
// AVAILABLE with no travel estimate. Duplicate ids keep the first entry.
func (r *Registry) Load(filepath string) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("reading vehicle catalog: %w", err)
	}

	var catalog catalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		return fmt.Errorf("parsing vehicle catalog: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range catalog.Vehicles {
		if _, exists := r.index[entry.ID]; exists {
			log.Warnf("[fleet] duplicate vehicle id %s in catalog, keeping first", entry.ID)
			continue
		}
		r.index[entry.ID] = len(r.vehicles)
		r.vehicles = append(r.vehicles, models.Vehicle{
			ID:        entry.ID,
			Name:      entry.Name,
			Type:      entry.Type,
			Location:  entry.Location,
			Services:  entry.Services,
			Status:    models.StatusAvailable,
			Available: true,
			Eta:       geo.FormatEta(0),
		})
	}

	log.Infof("[fleet] loaded %d vehicles", len(r.vehicles))
	return nil
}

// All returns a snapshot of every vehicle in catalog order
func (r *Registry) All() []models.Vehicle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]models.Vehicle, len(r.vehicles))
	copy(snapshot, r.vehicles)
	return snapshot
}

// Get returns a vehicle by id
func (r *Registry) Get(id string) (models.Vehicle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.index[id]
	if !exists {
		return models.Vehicle{}, false
	}
	return r.vehicles[i], true
}

// FilterByType returns available vehicles of the given type, in catalog
// order. The type match is case-insensitive. No matches yields an empty
// slice, never an error.
func (r *Registry) FilterByType(vehicleType string) []models.Vehicle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := []models.Vehicle{}
	for _, v := range r.vehicles {
		if v.Available && strings.EqualFold(v.Type, vehicleType) {
			matches = append(matches, v)
		}
	}
	return matches
}

// ApplyEta records a computed travel estimate on a vehicle, identified by
// id. A zero ETA renders as "N/A". Returns false for an unknown id.
func (r *Registry) ApplyEta(id string, etaMinutes, distanceKm float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return false
	}

	v := &r.vehicles[i]
	v.EtaMinutes = etaMinutes
	v.Eta = geo.FormatEta(etaMinutes)
	v.DistanceKm = &distanceKm
	return true
}

// Dispatch transitions a vehicle to EN_ROUTE and out of the available
// pool. The transition is idempotent: dispatching an EN_ROUTE vehicle is
// a no-op write, and the post-transition snapshot is returned either way.
func (r *Registry) Dispatch(id string) (models.Vehicle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return models.Vehicle{}, false
	}

	v := &r.vehicles[i]
	v.Status = models.StatusEnRoute
	v.Available = false
	return *v, true
}

// Release returns a vehicle to the available pool and clears its travel
// estimate, which described a run that is now over.
func (r *Registry) Release(id string) (models.Vehicle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return models.Vehicle{}, false
	}

	v := &r.vehicles[i]
	v.Status = models.StatusAvailable
	v.Available = true
	v.EtaMinutes = 0
	v.Eta = geo.FormatEta(0)
	v.DistanceKm = nil
	return *v, true
}

// UpdatePosition moves a vehicle to a newly reported coordinate
func (r *Registry) UpdatePosition(id string, c models.Coordinate) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, exists := r.index[id]
	if !exists {
		return false
	}
	r.vehicles[i].Location = c
	return true
}

// Count returns the number of vehicles in the registry
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.vehicles)
}
