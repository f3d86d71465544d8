// Package directory resolves caller identifiers to geographic locations
package directory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/karthikbm/lifeline/internal/models"
	"github.com/karthikbm/lifeline/internal/store"
)

// Directory maps phone numbers to known emergency locations. The reference
// map is seeded once at startup and never changes; live maps hold the last
// reported coordinate per phone and per vehicle. Resolution reads only the
// reference map — live overrides have dedicated accessors and must not be
// conflated with it.
type Directory struct {
	reference    map[string]models.LocationRecord
	livePhones   *store.Store[models.Coordinate]
	liveVehicles *store.Store[models.Coordinate]
}

// New creates an empty directory
func New() *Directory {
	return &Directory{
		reference:    make(map[string]models.LocationRecord),
		livePhones:   store.New[models.Coordinate](),
		liveVehicles: store.New[models.Coordinate](),
	}
}

// Load reads the phone reference data from a JSON file. The JSON is a map
// of phone number -> location data.
func (d *Directory) Load(filepath string) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("reading phone location file: %w", err)
	}

	var raw map[string]struct {
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
		Address string  `json:"address"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing phone location JSON: %w", err)
	}

	for phone, loc := range raw {
		d.reference[phone] = models.LocationRecord{
			Coordinate: models.Coordinate{Latitude: loc.Lat, Longitude: loc.Lng},
			Address:    loc.Address,
		}
	}

	return nil
}

// Resolve looks up the known location for a phone number. It consults the
// seeded reference map only and performs no mutation.
func (d *Directory) Resolve(phone string) (models.LocationRecord, bool) {
	record, exists := d.reference[phone]
	return record, exists
}

// RecordPhoneLocation upserts the live coordinate reported for a phone
func (d *Directory) RecordPhoneLocation(phone string, c models.Coordinate) {
	d.livePhones.Set(phone, c)
}

// RecordVehicleLocation upserts the live coordinate reported for a vehicle
func (d *Directory) RecordVehicleLocation(vehicleID string, c models.Coordinate) {
	d.liveVehicles.Set(vehicleID, c)
}

// LivePhoneLocation returns the last reported coordinate for a phone
func (d *Directory) LivePhoneLocation(phone string) (models.Coordinate, bool) {
	return d.livePhones.Get(phone)
}

// LiveVehicleLocation returns the last reported coordinate for a vehicle
func (d *Directory) LiveVehicleLocation(vehicleID string) (models.Coordinate, bool) {
	return d.liveVehicles.Get(vehicleID)
}

// Count returns the number of seeded reference entries
func (d *Directory) Count() int {
	return len(d.reference)
}
