package lifecycle

import "sync"

// Guard serializes lifecycle operations per animal identifier: at most one
// test-result or sale operation may be in flight for a given animal at any
// time. A second caller is rejected immediately rather than queued; retry is
// the caller's concern.
//
// The guard is process-local. It does not provide cross-process exclusion.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewGuard constructs an empty guard. One guard belongs to one Service; it
// is never shared ambiently.
func NewGuard() *Guard {
	return &Guard{inFlight: make(map[string]struct{})}
}

// Begin marks id as in flight. It fails fast with ErrOperationInProgress if
// another operation already holds the id.
func (g *Guard) Begin(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[id]; busy {
		return ErrOperationInProgress
	}
	g.inFlight[id] = struct{}{}
	return nil
}

// End releases id. Safe to call for an id that is not held.
func (g *Guard) End(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, id)
}
