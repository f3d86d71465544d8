package fleet

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/karthikbm/lifeline/internal/models"
)

const catalogJSON = `{
	"vehicles": [
		{"id": "AMB-001", "name": "Ambulance 1", "type": "AMBULANCE",
		 "location": {"latitude": 13.3409, "longitude": 77.1025},
		 "services": ["BLS", "ALS"]},
		{"id": "AMB-002", "name": "Ambulance 2", "type": "AMBULANCE",
		 "location": {"latitude": 13.3500, "longitude": 77.1100},
		 "services": ["BLS"]},
		{"id": "FIRE-001", "name": "Fire Engine 1", "type": "FIRE",
		 "location": {"latitude": 13.3450, "longitude": 77.1050},
		 "services": ["RESCUE"]}
	]
}`

func loadedRegistry(t *testing.T) *Registry {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vehicles.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return r
}

func TestLoadInitialState(t *testing.T) {
	r := loadedRegistry(t)

	if r.Count() != 3 {
		t.Fatalf("Count = %d, want 3", r.Count())
	}

	for _, v := range r.All() {
		if v.Status != models.StatusAvailable || !v.Available {
			t.Errorf("vehicle %s: status=%s available=%v, want AVAILABLE/true", v.ID, v.Status, v.Available)
		}
		if v.Eta != "N/A" {
			t.Errorf("vehicle %s: eta = %q, want N/A", v.ID, v.Eta)
		}
		if v.DistanceKm != nil {
			t.Errorf("vehicle %s: distance should start unset", v.ID)
		}
	}
}

func TestLoadPreservesOrder(t *testing.T) {
	r := loadedRegistry(t)

	want := []string{"AMB-001", "AMB-002", "FIRE-001"}
	for i, v := range r.All() {
		if v.ID != want[i] {
			t.Errorf("vehicle[%d] = %s, want %s", i, v.ID, want[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	r := NewRegistry()
	if err := r.Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing catalog")
	}
	if r.Count() != 0 {
		t.Errorf("Count = %d, want 0 after failed load", r.Count())
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.Load(path); err == nil {
		t.Error("expected error for malformed catalog")
	}
	if r.Count() != 0 {
		t.Errorf("Count = %d, want 0 after failed load", r.Count())
	}
}

func TestFilterByType(t *testing.T) {
	r := loadedRegistry(t)

	tests := []struct {
		name        string
		vehicleType string
		wantIDs     []string
	}{
		{"exact case", "AMBULANCE", []string{"AMB-001", "AMB-002"}},
		{"lower case", "ambulance", []string{"AMB-001", "AMB-002"}},
		{"mixed case", "Fire", []string{"FIRE-001"}},
		{"no match", "POLICE", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := r.FilterByType(tc.vehicleType)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d vehicles, want %d", len(got), len(tc.wantIDs))
			}
			for i, v := range got {
				if v.ID != tc.wantIDs[i] {
					t.Errorf("vehicle[%d] = %s, want %s", i, v.ID, tc.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterExcludesDispatched(t *testing.T) {
	r := loadedRegistry(t)

	if _, ok := r.Dispatch("AMB-001"); !ok {
		t.Fatal("dispatch failed")
	}

	got := r.FilterByType("AMBULANCE")
	if len(got) != 1 || got[0].ID != "AMB-002" {
		t.Errorf("filter after dispatch = %v, want only AMB-002", got)
	}
}

func TestApplyEta(t *testing.T) {
	r := loadedRegistry(t)

	if !r.ApplyEta("AMB-001", 5.3, 5.31) {
		t.Fatal("ApplyEta failed for known id")
	}

	v, _ := r.Get("AMB-001")
	if v.Eta != "5.3 mins" || v.EtaMinutes != 5.3 {
		t.Errorf("eta = %q / %v, want 5.3 mins / 5.3", v.Eta, v.EtaMinutes)
	}
	if v.DistanceKm == nil || *v.DistanceKm != 5.31 {
		t.Errorf("distance = %v, want 5.31", v.DistanceKm)
	}

	if !r.ApplyEta("AMB-001", 0, 0) {
		t.Fatal("ApplyEta failed")
	}
	v, _ = r.Get("AMB-001")
	if v.Eta != "N/A" {
		t.Errorf("zero eta rendered as %q, want N/A", v.Eta)
	}

	if r.ApplyEta("NOPE", 1, 1) {
		t.Error("ApplyEta should fail for unknown id")
	}
}

func TestDispatchTransition(t *testing.T) {
	r := loadedRegistry(t)

	v, ok := r.Dispatch("AMB-001")
	if !ok {
		t.Fatal("dispatch failed for known id")
	}
	if v.Status != models.StatusEnRoute || v.Available {
		t.Errorf("dispatched vehicle: status=%s available=%v", v.Status, v.Available)
	}

	// Re-dispatch is an idempotent no-op write.
	again, ok := r.Dispatch("AMB-001")
	if !ok || again.Status != models.StatusEnRoute || again.Available {
		t.Errorf("re-dispatch: status=%s available=%v ok=%v", again.Status, again.Available, ok)
	}

	if _, ok := r.Dispatch("NOPE"); ok {
		t.Error("dispatch should fail for unknown id")
	}
}

func TestRelease(t *testing.T) {
	r := loadedRegistry(t)

	r.ApplyEta("AMB-001", 5, 5)
	r.Dispatch("AMB-001")

	v, ok := r.Release("AMB-001")
	if !ok {
		t.Fatal("release failed for known id")
	}
	if v.Status != models.StatusAvailable || !v.Available {
		t.Errorf("released vehicle: status=%s available=%v", v.Status, v.Available)
	}
	if v.Eta != "N/A" || v.EtaMinutes != 0 || v.DistanceKm != nil {
		t.Errorf("release should clear estimate: eta=%q etaMinutes=%v distance=%v", v.Eta, v.EtaMinutes, v.DistanceKm)
	}

	if _, ok := r.Release("NOPE"); ok {
		t.Error("release should fail for unknown id")
	}
}

func TestConcurrentDispatchConsistency(t *testing.T) {
	r := loadedRegistry(t)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Dispatch("AMB-001")
		}()
	}
	wg.Wait()

	v, _ := r.Get("AMB-001")
	if v.Status != models.StatusEnRoute || v.Available {
		t.Errorf("after concurrent dispatch: status=%s available=%v", v.Status, v.Available)
	}

	// available must always agree with status, fleet-wide.
	for _, v := range r.All() {
		if v.Available != (v.Status == models.StatusAvailable) {
			t.Errorf("vehicle %s: available=%v disagrees with status=%s", v.ID, v.Available, v.Status)
		}
	}
}

func TestUpdatePosition(t *testing.T) {
	r := loadedRegistry(t)

	c := models.Coordinate{Latitude: 13.36, Longitude: 77.12}
	if !r.UpdatePosition("AMB-001", c) {
		t.Fatal("UpdatePosition failed for known id")
	}

	v, _ := r.Get("AMB-001")
	if v.Location != c {
		t.Errorf("location = %v, want %v", v.Location, c)
	}

	if r.UpdatePosition("NOPE", c) {
		t.Error("UpdatePosition should fail for unknown id")
	}
}

func TestSummarize(t *testing.T) {
	r := loadedRegistry(t)

	r.ApplyEta("AMB-001", 2, 2)
	r.ApplyEta("AMB-002", 4, 4)
	r.Dispatch("AMB-001")

	s := r.Summarize()
	if s.Total != 3 || s.Available != 2 || s.EnRoute != 1 {
		t.Errorf("counts = %+v", s)
	}
	if s.ByType["AMBULANCE"] != 2 || s.ByType["FIRE"] != 1 {
		t.Errorf("byType = %v", s.ByType)
	}
	if s.Eta == nil {
		t.Fatal("expected eta stats")
	}
	if s.Eta.MeanMinutes != 3 || s.Eta.MinMinutes != 2 || s.Eta.MaxMinutes != 4 {
		t.Errorf("eta stats = %+v", s.Eta)
	}
}

func TestSummarizeNoEstimates(t *testing.T) {
	r := loadedRegistry(t)

	s := r.Summarize()
	if s.Eta != nil {
		t.Errorf("eta stats should be nil before any computation, got %+v", s.Eta)
	}
}
