package handlers

import (
	"encoding/json"

	"github.com/karthikbm/lifeline/internal/models"
)

// coordinatePayload normalizes the coordinate spellings seen on the wire.
// Clients send lat/latitude and lng/lon/longitude interchangeably; the
// core only ever sees models.Coordinate.
type coordinatePayload struct {
	coordinate models.Coordinate
	present    bool
}

func (p *coordinatePayload) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lat       *float64 `json:"lat"`
		Latitude  *float64 `json:"latitude"`
		Lng       *float64 `json:"lng"`
		Lon       *float64 `json:"lon"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	lat := firstOf(raw.Latitude, raw.Lat)
	lng := firstOf(raw.Longitude, raw.Lng, raw.Lon)
	if lat == nil || lng == nil {
		return nil
	}

	p.coordinate = models.Coordinate{Latitude: *lat, Longitude: *lng}
	p.present = true
	return nil
}

// Coordinate returns the normalized coordinate and whether both axes were
// supplied and in range.
func (p coordinatePayload) Coordinate() (models.Coordinate, bool) {
	if !p.present || !p.coordinate.Valid() {
		return models.Coordinate{}, false
	}
	return p.coordinate, true
}

func firstOf(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
