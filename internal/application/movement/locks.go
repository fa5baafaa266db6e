package movement

import "sync"

// draftLocks serializa las operaciones sobre un mismo borrador dentro del proceso.
// Las entradas se liberan cuando nadie las usa.
type draftLocks struct {
	mu sync.Mutex
	m  map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newDraftLocks() *draftLocks {
	return &draftLocks{m: make(map[string]*lockEntry)}
}

// lock bloquea id y devuelve la función que lo libera.
func (l *draftLocks) lock(id string) func() {
	l.mu.Lock()
	e, ok := l.m[id]
	if !ok {
		e = &lockEntry{}
		l.m[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, id)
		}
		l.mu.Unlock()
	}
}
