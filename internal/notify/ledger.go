package notify

import (
	"context"
	"sync"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/parking"
)

// Ledger keeps every application submitted in this process, across sessions,
// for the management board and exports. It is lost on restart.
type Ledger struct {
	mu    sync.RWMutex
	items []parking.Application
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Publish(_ context.Context, app parking.Application) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, app)
	return nil
}

// All returns the applications in arrival order
func (l *Ledger) All() []parking.Application {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]parking.Application, len(l.items))
	copy(out, l.items)
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}
