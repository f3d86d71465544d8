// Package models defines shared data types
package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleStatus is the lifecycle state of a vehicle.
type VehicleStatus string

const (
	StatusAvailable VehicleStatus = "AVAILABLE"
	StatusEnRoute   VehicleStatus = "EN_ROUTE"
)

// Coordinate is a point in decimal degrees. The zero value (0, 0) is
// treated as "no location" throughout the system.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is inside the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// IsZero reports whether the coordinate is the "no location" sentinel.
func (c Coordinate) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}

// LocationRecord is a resolved emergency location: where the caller is,
// plus a human-readable address when one is known.
type LocationRecord struct {
	Coordinate Coordinate `json:"location"`
	Address    string     `json:"address,omitempty"`
}

// Vehicle is an emergency-response unit. Eta, EtaMinutes, and DistanceKm
// hold the last-computed estimate for the most recent target; they are
// stale until the next ETA computation and start out as "not applicable".
type Vehicle struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Type       string        `json:"type"`
	Location   Coordinate    `json:"location"`
	Services   []string      `json:"services"`
	Status     VehicleStatus `json:"status"`
	Available  bool          `json:"available"`
	Eta        string        `json:"eta"`
	EtaMinutes float64       `json:"etaMinutes"`
	DistanceKm *float64      `json:"distance,omitempty"`
}

// EtaSummary is the per-vehicle projection returned by batch ETA requests.
type EtaSummary struct {
	VehicleID   string        `json:"vehicleId"`
	VehicleName string        `json:"vehicleName"`
	VehicleType string        `json:"vehicleType"`
	EtaMinutes  float64       `json:"etaMinutes"`
	Status      VehicleStatus `json:"status"`
	Available   bool          `json:"available"`
	Services    []string      `json:"services"`
}

// DispatchRecord is one entry in the in-memory dispatch journal.
type DispatchRecord struct {
	ID           uuid.UUID  `json:"id"`
	VehicleID    string     `json:"vehicleId"`
	VehicleName  string     `json:"vehicleName"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address,omitempty"`
	Target       Coordinate `json:"target"`
	EtaMinutes   float64    `json:"etaMinutes"`
	DistanceKm   float64    `json:"distanceKm"`
	DispatchedAt time.Time  `json:"dispatchedAt"`
}
