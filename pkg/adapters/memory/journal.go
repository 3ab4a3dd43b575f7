// Package memory provides the in-memory journal backend, the default when
// no external store is configured.
package memory

import (
	"context"
	"sync"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// Journal implements ports.Journal in memory.
// Safe for concurrent use.
type Journal struct {
	mu   sync.RWMutex
	runs map[string][]domain.TxRecord
}

// NewJournal creates a new in-memory journal.
func NewJournal() *Journal {
	return &Journal{
		runs: make(map[string][]domain.TxRecord),
	}
}

// Append adds a record to the run's ordered log.
func (j *Journal) Append(ctx context.Context, runID string, rec domain.TxRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs[runID] = append(j.runs[runID], rec)
	return nil
}

// RunIDs returns the identifiers of every journaled run.
func (j *Journal) RunIDs() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	ids := make([]string, 0, len(j.runs))
	for id := range j.runs {
		ids = append(ids, id)
	}
	return ids
}

// Records returns a copy of the run's log so callers cannot mutate stored
// history.
func (j *Journal) Records(ctx context.Context, runID string) ([]domain.TxRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	records := j.runs[runID]
	out := make([]domain.TxRecord, len(records))
	copy(out, records)
	return out, nil
}
