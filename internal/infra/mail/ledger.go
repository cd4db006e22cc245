package mail

import (
	"sync"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

// Ledger keeps, per candidate, the automation events in the order they happened.
// It lives in memory and starts empty on every boot.
type Ledger struct {
	mu     sync.RWMutex
	events map[string][]entity.AutomationEvent
}

func NewLedger() *Ledger {
	return &Ledger{events: make(map[string][]entity.AutomationEvent)}
}

func (l *Ledger) Record(e entity.AutomationEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events[e.CandidateID] = append(l.events[e.CandidateID], e)
}

// Events returns a copy; callers may keep or modify it.
func (l *Ledger) Events(candidateID string) []entity.AutomationEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	src := l.events[candidateID]
	out := make([]entity.AutomationEvent, len(src))
	copy(out, src)
	return out
}
