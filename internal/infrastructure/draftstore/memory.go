package draftstore

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/gestiva/internal/domain/entity"
	"github.com/jhoicas/gestiva/internal/domain/movement"
	"github.com/jhoicas/gestiva/internal/domain/repository"
)

var _ repository.DraftRepository = (*MemoryStore)(nil)

type memoryEntry struct {
	draft     *entity.MovementDraft
	expiresAt time.Time
}

// MemoryStore borradores en memoria del proceso con expiración. Guarda y entrega copias,
// de modo que ningún llamador comparte estado mutable con el almacén.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore ttl <= 0 = sin expiración.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, d *entity.MovementDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := memoryEntry{draft: movement.CloneDraft(d)}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[d.ID] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*entity.MovementDraft, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if s.expired(e) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, nil
	}
	return movement.CloneDraft(e.draft), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Sweep elimina los borradores vencidos y devuelve cuántos quitó.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// RunSweeper ejecuta Sweep cada interval hasta que ctx se cancela.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return s.ttl > 0 && s.now().After(e.expiresAt)
}
