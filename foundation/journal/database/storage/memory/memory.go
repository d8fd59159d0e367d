// Package memory implements the ability to read and write slots to memory
// using a slice. Used primarily for testing.
package memory

import (
	"errors"
	"sync"

	"github.com/journal-labs/journalchain/foundation/journal/database"
)

// Memory represents the storage implementation for reading and storing
// slots in memory using a slice. This implements the database.Storage
// interface.
type Memory struct {
	mu    sync.RWMutex
	slots []database.SlotData
}

// New constructs a Memory value for use.
func New() (*Memory, error) {
	return &Memory{}, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Write takes the specified slot data and stores it in memory.
func (m *Memory) Write(slotData database.SlotData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := len(m.slots)
	if l+1 != int(slotData.Header.Number) {
		return errors.New("slot is out of order")
	}

	m.slots = append(m.slots, slotData)

	return nil
}

// GetSlot searches the ledger to locate and return the contents of the
// specified slot by number.
func (m *Memory) GetSlot(num uint64) (database.SlotData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l := uint64(len(m.slots))
	if num == 0 || num > l {
		return database.SlotData{}, errors.New("slot does not exist")
	}

	return m.slots[num-1], nil
}

// ForEach returns an iterator to walk through all the slots starting with
// slot number 1.
func (m *Memory) ForEach() database.Iterator {
	return &iterator{storage: m}
}

// Reset will clear out the ledger in memory.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots = []database.SlotData{}

	return nil
}

// =============================================================================

// iterator represents the iteration implementation for walking through and
// reading slots in memory. This implements the database.Iterator interface.
type iterator struct {
	storage *Memory // Access to the memory storage API.
	current uint64  // Current slot number being iterated over.
	eol     bool    // Represents the iterator is at the end of the ledger.
}

// Next retrieves the next slot from memory.
func (it *iterator) Next() (database.SlotData, error) {
	if it.eol {
		return database.SlotData{}, errors.New("end of ledger")
	}

	it.current++
	slotData, err := it.storage.GetSlot(it.current)
	if err != nil {
		it.eol = true
	}

	return slotData, err
}

// Done returns the end of ledger value.
func (it *iterator) Done() bool {
	return it.eol
}
