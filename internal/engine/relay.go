package engine

import "sync"

// RelayTracker is the membership set of chats whose free text is forwarded
// to the operator. A chat is in at most one mode: entering any ordinary menu
// or quiz flow leaves relay mode.
type RelayTracker struct {
	mu    sync.RWMutex
	chats map[int64]struct{}
}

func NewRelayTracker() *RelayTracker {
	return &RelayTracker{
		chats: make(map[int64]struct{}),
	}
}

func (t *RelayTracker) Enter(chatID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.chats[chatID] = struct{}{}
}

func (t *RelayTracker) Leave(chatID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.chats, chatID)
}

func (t *RelayTracker) Active(chatID int64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.chats[chatID]
	return ok
}
