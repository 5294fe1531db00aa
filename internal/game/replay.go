package game

import "sync"

// ReplayLog records the delta stream of a match in emission order, keyed by
// replay key. Duplicate keys are dropped, mirroring the client-side dedup
// contract. Tests use it to assert emission counts and ordering.
type ReplayLog struct {
	mu     sync.RWMutex
	deltas []Delta
	seen   map[string]bool
}

// NewReplayLog creates an empty replay log.
func NewReplayLog() *ReplayLog {
	return &ReplayLog{seen: make(map[string]bool)}
}

// Record appends a delta unless its key was already recorded.
func (l *ReplayLog) Record(delta Delta) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen[delta.Key] {
		return
	}
	l.seen[delta.Key] = true
	l.deltas = append(l.deltas, delta)
}

// Deltas returns a copy of the recorded stream in emission order.
func (l *ReplayLog) Deltas() []Delta {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cpy := make([]Delta, len(l.deltas))
	copy(cpy, l.deltas)
	return cpy
}

// Len returns the number of recorded deltas.
func (l *ReplayLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.deltas)
}

// CountType returns how many recorded deltas have the given event type.
func (l *ReplayLog) CountType(eventType EventType) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, d := range l.deltas {
		if d.Type == eventType {
			n++
		}
	}
	return n
}
