// Package state is the core API for the journal chain and implements all
// the business rules and processing.
package state

import (
	"sync"

	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/genesis"
	"github.com/journal-labs/journalchain/foundation/journal/txpool"
)

// EventHandler defines a function that is called when events occur in the
// processing of sealing slots.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for sealing pending transactions into
// slots.
type Worker interface {
	Shutdown()
	SignalSealSlot()
}

// =============================================================================

// Config represents the configuration required to start the node.
type Config struct {
	Genesis   genesis.Genesis
	Storage   database.Storage
	EvHandler EventHandler
}

// State manages the journal chain state.
type State struct {
	mu sync.Mutex

	genesis   genesis.Genesis
	db        *database.Database
	txPool    *txpool.TxPool
	evHandler EventHandler

	Worker Worker
}

// New constructs a new state for journal chain data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Access the storage for the ledger and replay any existing slots.
	db, err := database.New(cfg.Genesis, cfg.Storage, ev)
	if err != nil {
		return nil, err
	}

	state := State{
		genesis:   cfg.Genesis,
		db:        db,
		txPool:    txpool.New(),
		evHandler: ev,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {

	// Make sure the database is properly closed.
	defer func() {
		s.db.Close()
	}()

	// Stop all slot sealing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
