package crdt

import "sync"

// LamportClock локальный счетчик Лампорта участника. Серверные счетчики
// живут в хранилище часов; этот тип нужен клиенту между синхронизациями.
type LamportClock struct {
	nodeID  string
	counter uint64
	mu      sync.Mutex
}

// NewLamportClock creates a clock of the participant starting at counter
func NewLamportClock(nodeID string, counter uint64) *LamportClock {
	return &LamportClock{nodeID: nodeID, counter: counter}
}

// NodeID returns the participant the clock belongs to
func (lc *LamportClock) NodeID() string { return lc.nodeID }

// Tick registers a local event
func (lc *LamportClock) Tick() uint64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.counter++
	return lc.counter
}

// Update registers a received event stamped with remote
func (lc *LamportClock) Update(remote uint64) uint64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.counter = MergeCounter(lc.counter, remote)
	return lc.counter
}

// Counter returns the current value without advancing it
func (lc *LamportClock) Counter() uint64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	return lc.counter
}

// MergeCounter правило получения: max(local, received) + 1
func MergeCounter(local, received uint64) uint64 {
	return max(local, received) + 1
}
