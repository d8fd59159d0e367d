package sqlite_test

import (
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/database/storage/sqlite"
	"github.com/stretchr/testify/require"
)

func Test_WriteInsertsSlot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS slots").WillReturnResult(sqlmock.NewResult(0, 0))

	strg, err := sqlite.New(db)
	require.NoError(t, err)

	slotData := database.SlotData{Hash: "0xaa", Header: database.SlotHeader{Number: 1}}
	data, err := json.Marshal(slotData)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO slots").
		WithArgs(slotData.Header.Number, slotData.Hash, data).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, strg.Write(slotData))
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_GetSlotReadsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS slots").WillReturnResult(sqlmock.NewResult(0, 0))

	strg, err := sqlite.New(db)
	require.NoError(t, err)

	slotData := database.SlotData{Hash: "0xbb", Header: database.SlotHeader{Number: 2, PrevSlotHash: "0xaa"}}
	data, err := json.Marshal(slotData)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT data FROM slots").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(data))

	got, err := strg.GetSlot(2)
	require.NoError(t, err)
	require.Equal(t, slotData, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_IteratorStopsAtEndOfLedger(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS slots").WillReturnResult(sqlmock.NewResult(0, 0))

	strg, err := sqlite.New(db)
	require.NoError(t, err)

	slotData := database.SlotData{Hash: "0xaa", Header: database.SlotHeader{Number: 1}}
	data, err := json.Marshal(slotData)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT data FROM slots").
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(data))
	mock.ExpectQuery("SELECT data FROM slots").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	var count int
	iter := strg.ForEach()
	for _, err := iter.Next(); !iter.Done(); _, err = iter.Next() {
		require.NoError(t, err)
		count++
	}

	require.Equal(t, 1, count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func Test_ResetClearsLedger(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS slots").WillReturnResult(sqlmock.NewResult(0, 0))

	strg, err := sqlite.New(db)
	require.NoError(t, err)

	mock.ExpectExec("DELETE FROM slots").WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, strg.Reset())
	require.NoError(t, mock.ExpectationsWereMet())
}
