package handlers

import (
	"sync"

	"claimboard/internal/claims"
)

// Notice is one transient notification queued for a session.
type Notice struct {
	Kind    claims.NotifyKind
	Message string
}

// FlashStore queues transient notifications per session until the next
// page render drains them. It is the notification sink injected into
// each session's transition gate.
type FlashStore struct {
	mu      sync.Mutex
	notices map[string][]Notice
}

// NewFlashStore creates an empty FlashStore.
func NewFlashStore() *FlashStore {
	return &FlashStore{notices: make(map[string][]Notice)}
}

// Push queues a notification for the session.
func (f *FlashStore) Push(token string, kind claims.NotifyKind, message string) {
	f.mu.Lock()
	f.notices[token] = append(f.notices[token], Notice{Kind: kind, Message: message})
	f.mu.Unlock()
}

// Drain returns and clears the queued notifications for the session.
func (f *FlashStore) Drain(token string) []Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.notices[token]
	delete(f.notices, token)
	return out
}

// Clear discards any queued notifications for the session.
func (f *FlashStore) Clear(token string) {
	f.mu.Lock()
	delete(f.notices, token)
	f.mu.Unlock()
}

// Sweep discards queued notifications for every session alive rejects.
func (f *FlashStore) Sweep(alive func(token string) bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token := range f.notices {
		if !alive(token) {
			delete(f.notices, token)
		}
	}
}

// Notifier returns a claims.Notifier bound to one session.
func (f *FlashStore) Notifier(token string) claims.Notifier {
	return boundNotifier{store: f, token: token}
}

type boundNotifier struct {
	store *FlashStore
	token string
}

func (n boundNotifier) Notify(kind claims.NotifyKind, message string) {
	n.store.Push(n.token, kind, message)
}
