package handlers

import (
	"net/http"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "lifeline",
		"description": "Emergency-response fleet tracking and dispatch",
		"version":     "1.0.0",
		"endpoints": map[string]string{
			"GET /health":                         "Health check",
			"GET /api":                            "API information",
			"GET /api/vehicles":                   "List vehicles, ?type= filters available units",
			"GET /api/location/{phone}":           "Resolve a caller's location, refreshes fleet ETAs",
			"POST /api/location":                  "Record a live phone location",
			"GET /api/location/live/{phone}":      "Last live-reported phone location",
			"POST /api/calculate-etas":            "Batch ETA for selected vehicles",
			"POST /api/vehicles/{id}/location":    "Record a live vehicle position",
			"GET /api/vehicles/{id}/location":     "Last live-reported vehicle position",
			"POST /api/dispatch":                  "Dispatch a vehicle to a caller",
			"POST /api/release":                   "Return a vehicle to the available pool",
			"GET /api/dispatches":                 "Recent dispatch journal",
			"GET /api/fleet/summary":              "Fleet availability and ETA statistics",
			"GET /ws":                             "Websocket fleet snapshots",
		},
	})
}
