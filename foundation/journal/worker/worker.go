// Package worker implements the slot sealing workflow for the node.
package worker

import (
	"sync"
	"time"

	"github.com/journal-labs/journalchain/foundation/journal/state"
)

// sealInterval represents how often the worker seals pending transactions
// into a slot when no submission signal arrives first.
const sealInterval = 2 * time.Second

// Worker manages the slot sealing workflow for the node.
type Worker struct {
	state     *state.State
	wg        sync.WaitGroup
	ticker    *time.Ticker
	shut      chan struct{}
	sealSlot  chan bool
	evHandler state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up all the background processes.
func Run(st *state.State, evHandler state.EventHandler) {
	w := Worker{
		state:     st,
		ticker:    time.NewTicker(sealInterval),
		shut:      make(chan struct{}),
		sealSlot:  make(chan bool, 1),
		evHandler: evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// We don't want to return until we know the sealing G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.sealingOperations()
	}()

	<-hasStarted
}

// Shutdown terminates the goroutine performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.ticker.Stop()
	close(w.shut)
	w.wg.Wait()
}

// SignalSealSlot signals the worker to seal the pending transactions into
// the next slot. The channel is buffered so signals never block and extra
// signals are dropped while a seal is already scheduled.
func (w *Worker) SignalSealSlot() {
	select {
	case w.sealSlot <- true:
	default:
	}

	w.evHandler("worker: SignalSealSlot: seal signaled")
}

// =============================================================================

// sealingOperations handles sealing pending transactions into slots.
func (w *Worker) sealingOperations() {
	w.evHandler("worker: sealingOperations: G started")
	defer w.evHandler("worker: sealingOperations: G completed")

	for {
		select {
		case <-w.sealSlot:
			if !w.isShutdown() {
				w.runSealSlotOperation()
			}
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runSealSlotOperation()
			}
		case <-w.shut:
			w.evHandler("worker: sealingOperations: received shut signal")
			return
		}
	}
}

// runSealSlotOperation takes all the transactions from the pool and writes
// a new slot to the ledger.
func (w *Worker) runSealSlotOperation() {
	slot, err := w.state.SealSlot()
	if err != nil {
		if err != state.ErrNoTransactions {
			w.evHandler("worker: runSealSlotOperation: ERROR: %s", err)
		}
		return
	}

	w.evHandler("worker: runSealSlotOperation: slot[%d] sealed with %d transactions", slot.Header.Number, len(slot.Trans))
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
