package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/karthikbm/lifeline/internal/directory"
	"github.com/karthikbm/lifeline/internal/fleet"
)

type VehicleHandler struct {
	registry  *fleet.Registry
	directory *directory.Directory
	hub       FleetBroadcaster
}

func NewVehicleHandler(registry *fleet.Registry, dir *directory.Directory, hub FleetBroadcaster) *VehicleHandler {
	return &VehicleHandler{
		registry:  registry,
		directory: dir,
		hub:       hub,
	}
}

// List returns the fleet. With ?type= it narrows to available vehicles of
// that type; without it every vehicle is returned regardless of state.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicleType := r.URL.Query().Get("type")

	if vehicleType != "" {
		writeJSON(w, http.StatusOK, h.registry.FilterByType(vehicleType))
		return
	}
	writeJSON(w, http.StatusOK, h.registry.All())
}

// Summary returns fleet-wide availability counts and ETA statistics
func (h *VehicleHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"summary": h.registry.Summarize(),
	})
}

// ReportLocation records a live position report for a vehicle and moves
// the vehicle on the map.
func (h *VehicleHandler) ReportLocation(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.PathValue("vehicleId")

	var payload struct {
		Location coordinatePayload `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	coord, ok := payload.Location.Coordinate()
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	if !h.registry.UpdatePosition(vehicleID, coord) {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	h.directory.RecordVehicleLocation(vehicleID, coord)
	h.hub.BroadcastFleet()

	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

// LiveLocation returns the last reported position for a vehicle
func (h *VehicleHandler) LiveLocation(w http.ResponseWriter, r *http.Request) {
	vehicleID := r.PathValue("vehicleId")

	coord, found := h.directory.LiveVehicleLocation(vehicleID)
	if !found {
		writeError(w, http.StatusNotFound, "No live location for vehicle")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"vehicleId": vehicleID,
		"location":  coord,
	})
}
