package state

import (
	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/genesis"
)

// QueryLatest represents a query to the latest slot in the ledger.
const QueryLatest = ^uint64(0) >> 1

// =============================================================================

// Genesis returns a copy of the genesis information.
func (s *State) Genesis() genesis.Genesis {
	return s.genesis
}

// LatestSlot returns a copy of the current latest slot.
func (s *State) LatestSlot() database.Slot {
	return s.db.LatestSlot()
}

// PendingTransactions returns a copy of the pending transaction pool.
func (s *State) PendingTransactions() []database.SlotTx {
	return s.txPool.PickBest(-1)
}

// Accounts returns a copy of the database accounts, sorted by account id.
func (s *State) Accounts() []database.Account {
	return s.db.AccountsSorted()
}

// QueryAccount returns a copy of the account from the database.
func (s *State) QueryAccount(accountID database.AccountID) (database.Account, error) {
	return s.db.Account(accountID)
}

// QueryEntry returns the journal entry stored at the specified address.
func (s *State) QueryEntry(address database.EntryAddress) (database.JournalEntry, error) {
	return s.db.Entry(address)
}

// QueryEntryByOwnerTitle derives the entry address for the owner and title
// pair and returns the journal entry stored there.
func (s *State) QueryEntryByOwnerTitle(owner database.AccountID, title string) (database.JournalEntry, error) {
	return s.db.EntryByOwnerTitle(owner, title)
}

// QueryEntriesByOwner returns all journal entries owned by the specified
// account.
func (s *State) QueryEntriesByOwner(owner database.AccountID) []database.JournalEntry {
	return s.db.EntriesByOwner(owner)
}

// QueryAllEntries returns every journal entry on the chain.
func (s *State) QueryAllEntries() []database.JournalEntry {
	return s.db.AllEntries()
}

// EntryCount returns the number of journal entries on the chain.
func (s *State) EntryCount() int {
	return s.db.EntryCount()
}

// QuerySlotsByNumber returns the set of slots based on slot numbers. This
// function reads the ledger from storage first.
func (s *State) QuerySlotsByNumber(from uint64, to uint64) []database.Slot {
	if from == QueryLatest {
		from = s.db.LatestSlot().Header.Number
		to = from
	}

	if to == QueryLatest {
		to = s.db.LatestSlot().Header.Number
	}

	var out []database.Slot
	for i := from; i <= to; i++ {
		slot, err := s.db.GetSlot(i)
		if err != nil {
			s.evHandler("state: QuerySlotsByNumber: ERROR: %s", err)
			return nil
		}

		out = append(out, slot)
	}

	return out
}

// UpsertNodeTransaction accepts a transaction directly into the pool
// without signaling the worker. Used by node tooling that seals manually.
func (s *State) UpsertNodeTransaction(tx database.SlotTx) error {
	if err := s.validateTransaction(tx.SignedTx); err != nil {
		return err
	}

	return s.txPool.Upsert(tx)
}
