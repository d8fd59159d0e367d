// Package disk implements the database.Storage interface using one JSON
// file per slot on disk.
package disk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"

	"github.com/journal-labs/journalchain/foundation/journal/database"
)

// Disk represents the storage implementation for reading and storing slots
// in their own separate files on disk. This implements the database.Storage
// interface.
type Disk struct {
	dbPath string
}

// New constructs a Disk value for use.
func New(dbPath string) (*Disk, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}

	return &Disk{dbPath: dbPath}, nil
}

// Close in this implementation has nothing to do since a new file is
// written to disk for each new slot and then immediately closed.
func (d *Disk) Close() error {
	return nil
}

// Write takes the specified slot data and stores it on disk in a file
// labeled with the slot number.
func (d *Disk) Write(slotData database.SlotData) error {

	// Marshal the slot for writing to disk in a more human readable format.
	data, err := json.MarshalIndent(slotData, "", "  ")
	if err != nil {
		return err
	}

	// Create a new file for this slot and name it based on the slot number.
	f, err := os.OpenFile(d.getPath(slotData.Header.Number), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	// Write the new slot to disk.
	if _, err := f.Write(data); err != nil {
		return err
	}

	return nil
}

// GetSlot searches the ledger on disk to locate and return the contents of
// the specified slot by number.
func (d *Disk) GetSlot(num uint64) (database.SlotData, error) {

	// Open the slot file for the specified number.
	f, err := os.OpenFile(d.getPath(num), os.O_RDONLY, 0600)
	if err != nil {
		return database.SlotData{}, err
	}
	defer f.Close()

	// Decode the contents of the slot.
	var slotData database.SlotData
	if err := json.NewDecoder(f).Decode(&slotData); err != nil {
		return database.SlotData{}, err
	}

	return slotData, nil
}

// ForEach returns an iterator to walk through all the slots starting with
// slot number 1.
func (d *Disk) ForEach() database.Iterator {
	return &iterator{disk: d}
}

// Reset will clear out the ledger on disk.
func (d *Disk) Reset() error {
	if err := os.RemoveAll(d.dbPath); err != nil {
		return err
	}

	return os.MkdirAll(d.dbPath, 0755)
}

// getPath forms the path to the specified slot.
func (d *Disk) getPath(slotNum uint64) string {
	name := strconv.FormatUint(slotNum, 10)
	return path.Join(d.dbPath, fmt.Sprintf("%s.json", name))
}

// =============================================================================

// iterator represents the iteration implementation for walking through and
// reading slots on disk. This implements the database.Iterator interface.
type iterator struct {
	disk    *Disk  // Access to the disk storage API.
	current uint64 // Current slot number being iterated over.
	eol     bool   // Represents the iterator is at the end of the ledger.
}

// Next retrieves the next slot from disk.
func (it *iterator) Next() (database.SlotData, error) {
	if it.eol {
		return database.SlotData{}, errors.New("end of ledger")
	}

	it.current++
	slotData, err := it.disk.GetSlot(it.current)
	if errors.Is(err, fs.ErrNotExist) {
		it.eol = true
	}

	return slotData, err
}

// Done returns the end of ledger value.
func (it *iterator) Done() bool {
	return it.eol
}
