package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/karthikbm/lifeline/internal/dispatch"
)

const (
	defaultJournalLimit = 20
	maxJournalLimit     = 100
)

type DispatchHandler struct {
	engine *dispatch.Engine
	hub    FleetBroadcaster
}

func NewDispatchHandler(engine *dispatch.Engine, hub FleetBroadcaster) *DispatchHandler {
	return &DispatchHandler{engine: engine, hub: hub}
}

// CalculateEtas computes travel estimates for a set of vehicles against a
// target location.
func (h *DispatchHandler) CalculateEtas(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Location   coordinatePayload `json:"location"`
		VehicleIDs []string          `json:"vehicleIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Missing location or vehicle IDs")
		return
	}

	target, ok := payload.Location.Coordinate()
	if !ok || len(payload.VehicleIDs) == 0 {
		writeError(w, http.StatusBadRequest, "Missing location or vehicle IDs")
		return
	}

	etas := h.engine.BatchEta(payload.VehicleIDs, target)
	h.hub.BroadcastFleet()

	writeJSON(w, http.StatusOK, map[string]any{"etas": etas})
}

// Dispatch sends a vehicle to the emergency at a caller's location
func (h *DispatchHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		VehicleID string `json:"vehicle_id"`
		Phone     string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Missing vehicle_id or phone")
		return
	}
	if payload.VehicleID == "" || payload.Phone == "" {
		writeError(w, http.StatusBadRequest, "Missing vehicle_id or phone")
		return
	}

	result, err := h.engine.DispatchToPhone(payload.VehicleID, payload.Phone)
	switch {
	case errors.Is(err, dispatch.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, "Emergency location not found")
		return
	case errors.Is(err, dispatch.ErrVehicleNotFound):
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.hub.BroadcastFleet()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"dispatchId": result.DispatchID,
		"eta":        result.EtaMinutes,
		"vehicle":    result.Vehicle,
	})
}

// Release returns a dispatched vehicle to the available pool
func (h *DispatchHandler) Release(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		VehicleID string `json:"vehicle_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.VehicleID == "" {
		writeError(w, http.StatusBadRequest, "Missing vehicle_id")
		return
	}

	vehicle, found := h.engine.Release(payload.VehicleID)
	if !found {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	h.hub.BroadcastFleet()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"vehicle": vehicle,
	})
}

// Journal lists recent dispatch decisions, newest first
func (h *DispatchHandler) Journal(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", defaultJournalLimit, 1, maxJournalLimit)
	records := h.engine.Recent(limit)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"count":      len(records),
		"dispatches": records,
	})
}

func parseIntParam(r *http.Request, name string, defaultVal, min, max int) int {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}

	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
