package state

import (
	"errors"

	"github.com/journal-labs/journalchain/foundation/journal/database"
)

// ErrNoTransactions is returned when a slot is requested to be sealed and
// there are no pending transactions.
var ErrNoTransactions = errors.New("no transactions in the pool")

// =============================================================================

// SealSlot seals the pending transactions into the next slot in the ledger.
// Transactions that fail the program rules are dropped from the pool, not
// written to the ledger.
func (s *State) SealSlot() (database.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: SealSlot: check pending pool count")

	if s.txPool.Count() == 0 {
		return database.Slot{}, ErrNoTransactions
	}

	// Pick the next set of transactions and apply each one against the
	// current database state. Only transactions that apply cleanly are
	// written to the slot.
	candidates := s.txPool.PickBest(int(s.genesis.TransPerSlot))
	slotNum := s.db.LatestSlot().Header.Number + 1

	trans := make([]database.SlotTx, 0, len(candidates))
	for _, tx := range candidates {

		// Applying directly against the database gives us the program's
		// rules for free. Failures are dropped so the owner can re-submit
		// with the problem corrected.
		if err := s.db.ApplyTransaction(slotNum, tx); err != nil {
			s.evHandler("state: SealSlot: WARNING: tx[%s] dropped: %s", tx, err)
			s.txPool.Delete(tx)
			continue
		}

		s.evHandler("state: SealSlot: tx[%s] applied", tx)
		trans = append(trans, tx)
		s.txPool.Delete(tx)
	}

	if len(trans) == 0 {
		return database.Slot{}, ErrNoTransactions
	}

	s.evHandler("state: SealSlot: sealing %d transactions into slot %d", len(trans), slotNum)

	// Chain the new slot to the previous one and persist it.
	slot, err := database.NewSlot(s.db.LatestSlot(), trans)
	if err != nil {
		return database.Slot{}, err
	}

	if err := s.db.Write(slot); err != nil {
		return database.Slot{}, err
	}
	s.db.UpdateLatestSlot(slot)

	s.evHandler("state: SealSlot: slot[%d] sealed: hash[%s]", slot.Header.Number, slot.Hash())

	return slot, nil
}
