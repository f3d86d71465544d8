package dispatch

import (
	"sync"

	"github.com/karthikbm/lifeline/internal/models"
)

// Journal is an in-memory, process-lifetime record of dispatch decisions.
// It is not durable and makes no persistence guarantees.
type Journal struct {
	records []models.DispatchRecord
	mu      sync.RWMutex
}

// NewJournal creates an empty journal
func NewJournal() *Journal {
	return &Journal{}
}

// Append adds a record to the journal
func (j *Journal) Append(record models.DispatchRecord) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, record)
}

// Recent returns up to limit records, newest first. A non-positive limit
// returns everything.
func (j *Journal) Recent(limit int) []models.DispatchRecord {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := len(j.records)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]models.DispatchRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, j.records[i])
	}
	return out
}

// Size returns the number of records
func (j *Journal) Size() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.records)
}
