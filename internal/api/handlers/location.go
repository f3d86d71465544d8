package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/karthikbm/lifeline/internal/directory"
	"github.com/karthikbm/lifeline/internal/dispatch"
)

type LocationHandler struct {
	directory *directory.Directory
	engine    *dispatch.Engine
	hub       FleetBroadcaster
}

func NewLocationHandler(dir *directory.Directory, engine *dispatch.Engine, hub FleetBroadcaster) *LocationHandler {
	return &LocationHandler{
		directory: dir,
		engine:    engine,
		hub:       hub,
	}
}

// Resolve looks up a caller's location by phone number. On a hit, every
// vehicle's displayed ETA is refreshed against that location before the
// response is written; dashboards poll the vehicle list right after
// resolving and expect the estimates to be current. An unknown phone
// mutates nothing.
func (h *LocationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	phone := r.PathValue("phone")

	record, found := h.directory.Resolve(phone)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Location not found"})
		return
	}

	h.engine.RefreshEtas(record.Coordinate)
	h.hub.BroadcastFleet()

	writeJSON(w, http.StatusOK, map[string]any{
		"location": map[string]float64{
			"lat": record.Coordinate.Latitude,
			"lng": record.Coordinate.Longitude,
		},
		"address": record.Address,
	})
}

// Report records a live location reported for a phone number
func (h *LocationHandler) Report(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Phone    string            `json:"phone"`
		Location coordinatePayload `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	coord, ok := payload.Location.Coordinate()
	if payload.Phone == "" || !ok {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	h.directory.RecordPhoneLocation(payload.Phone, coord)
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

// Live returns the last live-reported location for a phone number. This
// is the caller-reported override, distinct from the seeded reference
// data served by Resolve.
func (h *LocationHandler) Live(w http.ResponseWriter, r *http.Request) {
	phone := r.PathValue("phone")

	coord, found := h.directory.LivePhoneLocation(phone)
	if !found {
		writeError(w, http.StatusNotFound, "No live location for phone")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"phone":    phone,
		"location": coord,
	})
}
