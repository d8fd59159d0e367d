// Package sqlite implements the database.Storage interface using a sqlite
// database file. Unlike the disk storage, the whole ledger lives in a
// single file which is easier to back up and ship for archival.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Registers the sqlite3 driver.

	"github.com/journal-labs/journalchain/foundation/journal/database"
)

// createTable holds the schema for the ledger table.
const createTable = `
CREATE TABLE IF NOT EXISTS slots (
	num  INTEGER PRIMARY KEY,
	hash TEXT NOT NULL,
	data BLOB NOT NULL
)`

// Sqlite represents the storage implementation for reading and storing
// slots in a sqlite database. This implements the database.Storage
// interface.
type Sqlite struct {
	db *sql.DB
}

// Open opens the sqlite database at the specified path and prepares the
// schema for use.
func Open(path string) (*Sqlite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	return New(db)
}

// New constructs a Sqlite value around an existing database connection.
func New(db *sql.DB) (*Sqlite, error) {
	if _, err := db.Exec(createTable); err != nil {
		return nil, fmt.Errorf("creating slots table: %w", err)
	}

	return &Sqlite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Sqlite) Close() error {
	return s.db.Close()
}

// Write takes the specified slot data and stores it in the database.
func (s *Sqlite) Write(slotData database.SlotData) error {
	data, err := json.Marshal(slotData)
	if err != nil {
		return err
	}

	const q = `INSERT INTO slots (num, hash, data) VALUES (?, ?, ?)`
	if _, err := s.db.Exec(q, slotData.Header.Number, slotData.Hash, data); err != nil {
		return fmt.Errorf("inserting slot %d: %w", slotData.Header.Number, err)
	}

	return nil
}

// GetSlot searches the ledger to locate and return the contents of the
// specified slot by number.
func (s *Sqlite) GetSlot(num uint64) (database.SlotData, error) {
	const q = `SELECT data FROM slots WHERE num = ?`

	var data []byte
	if err := s.db.QueryRow(q, num).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.SlotData{}, errSlotNotExist
		}
		return database.SlotData{}, fmt.Errorf("querying slot %d: %w", num, err)
	}

	var slotData database.SlotData
	if err := json.Unmarshal(data, &slotData); err != nil {
		return database.SlotData{}, fmt.Errorf("decoding slot %d: %w", num, err)
	}

	return slotData, nil
}

// ForEach returns an iterator to walk through all the slots starting with
// slot number 1.
func (s *Sqlite) ForEach() database.Iterator {
	return &iterator{storage: s}
}

// Reset will clear out the ledger in the database.
func (s *Sqlite) Reset() error {
	const q = `DELETE FROM slots`
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("clearing slots table: %w", err)
	}

	return nil
}

// errSlotNotExist marks the end of the ledger for the iterator.
var errSlotNotExist = errors.New("slot does not exist")

// =============================================================================

// iterator represents the iteration implementation for walking through and
// reading slots from the database. This implements the database.Iterator
// interface.
type iterator struct {
	storage *Sqlite // Access to the sqlite storage API.
	current uint64  // Current slot number being iterated over.
	eol     bool    // Represents the iterator is at the end of the ledger.
}

// Next retrieves the next slot from the database.
func (it *iterator) Next() (database.SlotData, error) {
	if it.eol {
		return database.SlotData{}, errors.New("end of ledger")
	}

	it.current++
	slotData, err := it.storage.GetSlot(it.current)
	if errors.Is(err, errSlotNotExist) {
		it.eol = true
	}

	return slotData, err
}

// Done returns the end of ledger value.
func (it *iterator) Done() bool {
	return it.eol
}
