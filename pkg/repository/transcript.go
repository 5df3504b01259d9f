package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/darta-hq/darta-assistant/pkg/domain"
)

// transcriptRepository is the append-only in-memory conversation history.
// Entries are never mutated or removed; ordering is insertion order.
type transcriptRepository struct {
	mu      sync.RWMutex
	entries []domain.TranscriptEntry
}

func NewTranscriptRepository() *transcriptRepository {
	return &transcriptRepository{}
}

// Append stores the entry and returns it with the id and timestamp filled in
// when the caller left them empty.
func (t *transcriptRepository) Append(entry domain.TranscriptEntry) domain.TranscriptEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	t.entries = append(t.entries, entry)
	return entry
}

// All returns a copy of the transcript in append order.
func (t *transcriptRepository) All() []domain.TranscriptEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.TranscriptEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *transcriptRepository) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
