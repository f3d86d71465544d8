package handlers

// FleetBroadcaster pushes fleet snapshots to live listeners after a
// mutation. Handlers call it fire-and-forget; delivery is best effort.
type FleetBroadcaster interface {
	BroadcastFleet()
}
