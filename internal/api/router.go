package api

import (
	"net/http"

	"github.com/karthikbm/lifeline/internal/api/handlers"
	"github.com/karthikbm/lifeline/internal/config"
	"github.com/karthikbm/lifeline/internal/directory"
	"github.com/karthikbm/lifeline/internal/dispatch"
	"github.com/karthikbm/lifeline/internal/fleet"
)

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	cfg *config.Config,
	registry *fleet.Registry,
	dir *directory.Directory,
	engine *dispatch.Engine,
) http.Handler {
	hub := NewHub(registry)

	healthHandler := handlers.NewHealthHandler()
	rootHandler := handlers.NewRootHandler()
	vehicleHandler := handlers.NewVehicleHandler(registry, dir, hub)
	locationHandler := handlers.NewLocationHandler(dir, engine, hub)
	dispatchHandler := handlers.NewDispatchHandler(engine, hub)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /", rootHandler.Index)
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Fleet
	mux.HandleFunc("GET /api/vehicles", vehicleHandler.List)
	mux.HandleFunc("GET /api/fleet/summary", vehicleHandler.Summary)
	mux.HandleFunc("POST /api/vehicles/{vehicleId}/location", vehicleHandler.ReportLocation)
	mux.HandleFunc("GET /api/vehicles/{vehicleId}/location", vehicleHandler.LiveLocation)

	// Caller locations
	mux.HandleFunc("GET /api/location/{phone}", locationHandler.Resolve)
	mux.HandleFunc("POST /api/location", locationHandler.Report)
	mux.HandleFunc("GET /api/location/live/{phone}", locationHandler.Live)

	// Dispatch
	mux.HandleFunc("POST /api/calculate-etas", dispatchHandler.CalculateEtas)
	mux.HandleFunc("POST /api/dispatch", dispatchHandler.Dispatch)
	mux.HandleFunc("POST /api/release", dispatchHandler.Release)
	mux.HandleFunc("GET /api/dispatches", dispatchHandler.Journal)

	// The logging and timeout middleware wrap the response writer, which
	// hides the Hijacker the websocket upgrade needs, so the hub hangs
	// off the outer mux unwrapped.
	root := http.NewServeMux()
	root.HandleFunc("GET /ws", hub.Handle)
	root.Handle("/", Chain(mux,
		Recovery,
		Logging,
		CORS,
		Timeout(cfg.HTTPTimeout),
	))

	return root
}
