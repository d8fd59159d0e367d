// Package database handles all the lower level support for maintaining the
// journal ledger on disk and maintaining an in-memory database of account
// and journal entry state.
package database

import (
	"fmt"
	"sort"
	"sync"

	"github.com/journal-labs/journalchain/foundation/journal/genesis"
)

// Storage interface represents the behavior required to be implemented by
// any package providing support for storing and reading the ledger.
type Storage interface {
	Write(slotData SlotData) error
	GetSlot(num uint64) (SlotData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the slots.
type Iterator interface {
	Next() (SlotData, error)
	Done() bool
}

// =============================================================================

// DatabaseIterator provides support for iterating over the slots in the
// ledger converting the raw slot data as it goes.
type DatabaseIterator struct {
	iterator Iterator
}

// Next retrieves the next slot from storage.
func (di *DatabaseIterator) Next() (Slot, error) {
	slotData, err := di.iterator.Next()
	if err != nil {
		return Slot{}, err
	}

	return ToSlot(slotData)
}

// Done returns the end of ledger value.
func (di *DatabaseIterator) Done() bool {
	return di.iterator.Done()
}

// =============================================================================

// Database manages data related to accounts and journal entries on the chain.
type Database struct {
	mu sync.RWMutex

	genesis    genesis.Genesis
	latestSlot Slot
	accounts   map[AccountID]Account
	entries    map[EntryAddress]JournalEntry

	storage Storage
}

// New constructs a new database, applies the genesis balance information and
// replays any slots found in storage to rebuild the current state.
func New(genesis genesis.Genesis, storage Storage, evHandler func(v string, args ...any)) (*Database, error) {
	db := Database{
		genesis:  genesis,
		accounts: make(map[AccountID]Account),
		entries:  make(map[EntryAddress]JournalEntry),
		storage:  storage,
	}

	// Update the database with account balance information from genesis.
	for accountStr, balance := range genesis.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return nil, err
		}
		db.accounts[accountID] = newAccount(accountID, balance)
	}

	// Replay the slots from storage to rebuild the journal state. Each slot
	// is validated against the previous one so tampering is detected.
	iter := db.storage.ForEach()
	for slotData, err := iter.Next(); !iter.Done(); slotData, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		slot, err := ToSlot(slotData)
		if err != nil {
			return nil, err
		}

		if err := slot.ValidateSlot(db.latestSlot, evHandler); err != nil {
			return nil, err
		}

		for _, tx := range slot.Trans {
			if err := db.ApplyTransaction(slot.Header.Number, tx); err != nil {
				return nil, fmt.Errorf("slot %d: %w", slot.Header.Number, err)
			}
		}

		db.latestSlot = slot
	}

	return &db, nil
}

// Close closes the underlying storage.
func (db *Database) Close() {
	db.storage.Close()
}

// Reset re-initializes the database back to the genesis state.
func (db *Database) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Reset(); err != nil {
		return err
	}

	db.latestSlot = Slot{}
	db.entries = make(map[EntryAddress]JournalEntry)
	db.accounts = make(map[AccountID]Account)
	for accountStr, balance := range db.genesis.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return err
		}
		db.accounts[accountID] = newAccount(accountID, balance)
	}

	return nil
}

// =============================================================================

// ApplyTransaction performs the journal program logic for applying a
// transaction to the database state.
func (db *Database) ApplyTransaction(slotNum uint64, tx SlotTx) error {

	// Capture the owner account from the signature of the transaction. The
	// entry address derivation below binds the entry to this account, so a
	// signer can never reach an entry they do not own.
	ownerID, err := tx.FromAccount()
	if err != nil {
		return fmt.Errorf("invalid signature, %s", err)
	}

	if tx.ChainID != db.genesis.ChainID {
		return fmt.Errorf("transaction invalid, wrong chain id, got %d, exp %d", tx.ChainID, db.genesis.ChainID)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	owner := db.accounts[ownerID]
	owner.AccountID = ownerID

	if tx.Nonce <= owner.Nonce {
		return fmt.Errorf("transaction invalid, nonce too small, current %d, provided %d", owner.Nonce, tx.Nonce)
	}

	// The system transfer doesn't touch a journal entry, settle it here.
	if tx.Kind == TxTransfer {
		if ownerID == tx.To {
			return fmt.Errorf("transaction invalid, transferring lamports to yourself, from %s, to %s", ownerID, tx.To)
		}
		if owner.Balance < tx.Lamports {
			return ErrInsufficientFunds
		}

		to := db.accounts[tx.To]
		to.AccountID = tx.To

		owner.Balance -= tx.Lamports
		to.Balance += tx.Lamports

		owner.Nonce = tx.Nonce
		db.accounts[ownerID] = owner
		db.accounts[tx.To] = to

		return nil
	}

	address, err := DeriveEntryAddress(db.genesis.ProgramID, ownerID, tx.Title)
	if err != nil {
		return err
	}

	entry, entryExists := db.entries[address]

	switch tx.Kind {
	case TxCreate:
		if entryExists {
			return ErrEntryExists
		}

		// The owner pays a rent deposit for the account space. It is held
		// with the entry and refunded when the entry is closed.
		rent := EntrySpace(tx.Title, tx.Message) * db.genesis.RentPerByte
		if owner.Balance < rent {
			return ErrInsufficientFunds
		}
		owner.Balance -= rent

		db.entries[address] = JournalEntry{
			Address:     address,
			Owner:       ownerID,
			Title:       tx.Title,
			Message:     tx.Message,
			RentDeposit: rent,
			CreatedSlot: slotNum,
			UpdatedSlot: slotNum,
		}

	case TxUpdate:
		if !entryExists {
			return ErrEntryNotFound
		}
		if entry.Owner != ownerID {
			return ErrNotOwner
		}

		// Only the message changes. The title is part of the address
		// derivation so it is immutable. The account is re-sized for the
		// new message and the rent deposit adjusts with it.
		rent := EntrySpace(entry.Title, tx.Message) * db.genesis.RentPerByte
		switch {
		case rent > entry.RentDeposit:
			delta := rent - entry.RentDeposit
			if owner.Balance < delta {
				return ErrInsufficientFunds
			}
			owner.Balance -= delta

		case rent < entry.RentDeposit:
			owner.Balance += entry.RentDeposit - rent
		}

		entry.Message = tx.Message
		entry.RentDeposit = rent
		entry.UpdatedSlot = slotNum
		db.entries[address] = entry

	case TxDelete:
		if !entryExists {
			return ErrEntryNotFound
		}
		if entry.Owner != ownerID {
			return ErrNotOwner
		}

		// Closing the account refunds the full rent deposit to the owner.
		owner.Balance += entry.RentDeposit
		delete(db.entries, address)

	default:
		return fmt.Errorf("unknown instruction kind %q", tx.Kind)
	}

	// Update the nonce for the next transaction check.
	owner.Nonce = tx.Nonce
	db.accounts[ownerID] = owner

	return nil
}

// ValidateNonce checks the transaction nonce is larger than the last nonce
// used by the account that signed it.
func (db *Database) ValidateNonce(tx SignedTx) error {
	ownerID, err := tx.FromAccount()
	if err != nil {
		return err
	}

	var owner Account
	db.mu.RLock()
	{
		owner = db.accounts[ownerID]
	}
	db.mu.RUnlock()

	if tx.Nonce <= owner.Nonce {
		return fmt.Errorf("transaction invalid, nonce too small, current %d, provided %d", owner.Nonce, tx.Nonce)
	}

	return nil
}

// ValidateEntryState checks the instruction against the committed journal
// entry state so bad submissions are rejected up front instead of being
// dropped during sealing. A create must target a free address and an update
// or delete must target an existing entry.
func (db *Database) ValidateEntryState(tx SignedTx) error {
	if !entryTxKinds[tx.Kind] {
		return nil
	}

	ownerID, err := tx.FromAccount()
	if err != nil {
		return err
	}

	switch tx.Kind {
	case TxCreate:
		if _, err := db.EntryByOwnerTitle(ownerID, tx.Title); err == nil {
			return ErrEntryExists
		}

	case TxUpdate, TxDelete:
		if _, err := db.EntryByOwnerTitle(ownerID, tx.Title); err != nil {
			return err
		}
	}

	return nil
}

// =============================================================================

// Account retrieves the account for the specified account id.
func (db *Database) Account(accountID AccountID) (Account, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	account, exists := db.accounts[accountID]
	if !exists {
		return Account{}, ErrAccountNotFound
	}

	return account, nil
}

// CopyAccounts makes a copy of the current accounts in the database.
func (db *Database) CopyAccounts() map[AccountID]Account {
	db.mu.RLock()
	defer db.mu.RUnlock()

	accounts := make(map[AccountID]Account, len(db.accounts))
	for accountID, account := range db.accounts {
		accounts[accountID] = account
	}

	return accounts
}

// AccountsSorted returns the current accounts in ascending account id order.
func (db *Database) AccountsSorted() []Account {
	db.mu.RLock()
	defer db.mu.RUnlock()

	accounts := make([]Account, 0, len(db.accounts))
	for _, account := range db.accounts {
		accounts = append(accounts, account)
	}
	sort.Sort(byAccount(accounts))

	return accounts
}

// Entry retrieves the journal entry stored at the specified address.
func (db *Database) Entry(address EntryAddress) (JournalEntry, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	entry, exists := db.entries[address]
	if !exists {
		return JournalEntry{}, ErrEntryNotFound
	}

	return entry, nil
}

// EntryByOwnerTitle derives the entry address for the owner and title pair
// and retrieves the journal entry stored there.
func (db *Database) EntryByOwnerTitle(owner AccountID, title string) (JournalEntry, error) {
	address, err := DeriveEntryAddress(db.genesis.ProgramID, owner, title)
	if err != nil {
		return JournalEntry{}, err
	}

	return db.Entry(address)
}

// EntriesByOwner returns all journal entries owned by the specified account,
// sorted by title.
func (db *Database) EntriesByOwner(owner AccountID) []JournalEntry {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var entries []JournalEntry
	for _, entry := range db.entries {
		if entry.Owner == owner {
			entries = append(entries, entry)
		}
	}
	sort.Sort(byEntryTitle(entries))

	return entries
}

// AllEntries returns every journal entry on the chain, sorted by owner
// then title.
func (db *Database) AllEntries() []JournalEntry {
	db.mu.RLock()
	defer db.mu.RUnlock()

	entries := make([]JournalEntry, 0, len(db.entries))
	for _, entry := range db.entries {
		entries = append(entries, entry)
	}
	sort.Sort(byEntryTitle(entries))

	return entries
}

// EntryCount returns the number of journal entries currently on the chain.
func (db *Database) EntryCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.entries)
}

// =============================================================================

// UpdateLatestSlot provides safe access to update the latest slot.
func (db *Database) UpdateLatestSlot(slot Slot) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.latestSlot = slot
}

// LatestSlot returns the latest slot.
func (db *Database) LatestSlot() Slot {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestSlot
}

// Write adds a new slot to the ledger.
func (db *Database) Write(slot Slot) error {
	return db.storage.Write(NewSlotData(slot))
}

// ForEach returns an iterator to walk through all the slots starting with
// slot number 1.
func (db *Database) ForEach() DatabaseIterator {
	return DatabaseIterator{iterator: db.storage.ForEach()}
}

// GetSlot searches the ledger to locate and return the contents of the
// specified slot by number.
func (db *Database) GetSlot(num uint64) (Slot, error) {
	slotData, err := db.storage.GetSlot(num)
	if err != nil {
		return Slot{}, err
	}

	return ToSlot(slotData)
}
