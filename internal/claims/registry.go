package claims

import "sync"

// Registry hands out one Gate per interaction surface, keyed by session
// token, so each signed-in browser session gets its own pending state.
type Registry struct {
	mu      sync.Mutex
	gates   map[string]*Gate
	newGate func(token string) *Gate
}

// NewRegistry creates a registry that builds gates with newGate.
func NewRegistry(newGate func(token string) *Gate) *Registry {
	return &Registry{gates: make(map[string]*Gate), newGate: newGate}
}

// Gate returns the gate for token, creating it on first use.
func (r *Registry) Gate(token string) *Gate {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.gates[token]; ok {
		return g
	}
	g := r.newGate(token)
	r.gates[token] = g
	return g
}

// Drop discards the gate for token, along with any pending state.
// Called on logout and session expiry.
func (r *Registry) Drop(token string) {
	r.mu.Lock()
	delete(r.gates, token)
	r.mu.Unlock()
}

// Sweep drops every gate whose token alive rejects. Sessions that
// expire without another request never pass through Drop, so the
// registry is swept periodically alongside session cleanup.
func (r *Registry) Sweep(alive func(token string) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token := range r.gates {
		if !alive(token) {
			delete(r.gates, token)
		}
	}
}
