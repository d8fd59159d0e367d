package state_test

import (
	"crypto/ecdsa"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/database/storage/memory"
	"github.com/journal-labs/journalchain/foundation/journal/genesis"
	"github.com/journal-labs/journalchain/foundation/journal/state"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const programID = "F1HeAZG88A1DKV33VnLMDZNpZcenbazt5fEo1aA364R9"

// =============================================================================

func Test_SealSlot(t *testing.T) {
	t.Log("Given the need to seal pending transactions into slots.")
	{
		t.Logf("\tTest 0:\tWhen sealing a set of valid transactions.")
		{
			ownerKey, st := newState(t, 1_000_000)
			ownerID := database.PublicKeyToAccountID(ownerKey.PublicKey)

			submit(t, st, signTx(t, ownerKey, 1, database.TxCreate, "first", "hello"))
			submit(t, st, signTx(t, ownerKey, 2, database.TxCreate, "second", "world"))

			slot, err := st.SealSlot()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to seal the slot: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to seal the slot.", success)

			if slot.Header.Number != 1 || len(slot.Trans) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould seal both transactions into slot 1. got slot %d with %d", failed, slot.Header.Number, len(slot.Trans))
			}
			t.Logf("\t%s\tTest 0:\tShould seal both transactions into slot 1.", success)

			if len(st.PendingTransactions()) != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould drain the pending pool.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould drain the pending pool.", success)

			entries := st.QueryEntriesByOwner(ownerID)
			if len(entries) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have 2 entries on the chain. got %d", failed, len(entries))
			}
			t.Logf("\t%s\tTest 0:\tShould have 2 entries on the chain.", success)

			if st.LatestSlot().Hash() != slot.Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould advance the latest slot.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould advance the latest slot.", success)
		}

		t.Logf("\tTest 1:\tWhen a transaction breaks the program rules.")
		{
			ownerKey, st := newState(t, 1_000_000)

			// Two creates for the same title. The second one must be dropped
			// during sealing, not written to the ledger.
			submit(t, st, signTx(t, ownerKey, 1, database.TxCreate, "title", "first"))
			submit(t, st, signTx(t, ownerKey, 2, database.TxCreate, "title", "second"))

			slot, err := st.SealSlot()
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to seal the slot: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to seal the slot.", success)

			if len(slot.Trans) != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould drop the duplicate create. got %d transactions", failed, len(slot.Trans))
			}
			t.Logf("\t%s\tTest 1:\tShould drop the duplicate create.", success)

			if len(st.PendingTransactions()) != 0 {
				t.Fatalf("\t%s\tTest 1:\tShould remove the dropped transaction from the pool.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould remove the dropped transaction from the pool.", success)
		}

		t.Logf("\tTest 2:\tWhen there is nothing to seal.")
		{
			_, st := newState(t, 1_000_000)

			if _, err := st.SealSlot(); !errors.Is(err, state.ErrNoTransactions) {
				t.Fatalf("\t%s\tTest 2:\tShould refuse to seal an empty slot: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould refuse to seal an empty slot.", success)
		}
	}
}

func Test_SubmitValidation(t *testing.T) {
	t.Log("Given the need to validate wallet transactions before pooling them.")
	{
		t.Logf("\tTest 0:\tWhen the transaction targets the wrong chain.")
		{
			ownerKey, st := newState(t, 1_000_000)

			tx, err := database.NewTx(42, 1, database.TxCreate, "title", "message")
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a transaction: %v", failed, err)
			}
			signedTx, err := tx.Sign(ownerKey)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to sign a transaction: %v", failed, err)
			}

			if err := st.SubmitWalletTransaction(signedTx); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould reject the wrong chain id.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject the wrong chain id.", success)
		}

		t.Logf("\tTest 1:\tWhen the nonce was already used on the chain.")
		{
			ownerKey, st := newState(t, 1_000_000)

			submit(t, st, signTx(t, ownerKey, 1, database.TxCreate, "title", "message"))
			if _, err := st.SealSlot(); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to seal the slot: %v", failed, err)
			}

			stale := signTx(t, ownerKey, 1, database.TxUpdate, "title", "new message")
			if err := st.SubmitWalletTransaction(stale.SignedTx); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject the stale nonce.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject the stale nonce.", success)
		}

		t.Logf("\tTest 2:\tWhen creating an entry that already exists on the chain.")
		{
			ownerKey, st := newState(t, 1_000_000)

			first := signTx(t, ownerKey, 1, database.TxCreate, "title", "message")
			if err := st.SubmitWalletTransaction(first.SignedTx); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould accept the first create: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould accept the first create.", success)

			if _, err := st.SealSlot(); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to seal the slot: %v", failed, err)
			}

			dup := signTx(t, ownerKey, 2, database.TxCreate, "title", "again")
			if err := st.SubmitWalletTransaction(dup.SignedTx); !errors.Is(err, database.ErrEntryExists) {
				t.Fatalf("\t%s\tTest 2:\tShould reject the duplicate create at submit: %v", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould reject the duplicate create at submit.", success)
		}

		t.Logf("\tTest 3:\tWhen updating or deleting an entry that does not exist.")
		{
			ownerKey, st := newState(t, 1_000_000)

			upd := signTx(t, ownerKey, 1, database.TxUpdate, "missing", "message")
			if err := st.SubmitWalletTransaction(upd.SignedTx); !errors.Is(err, database.ErrEntryNotFound) {
				t.Fatalf("\t%s\tTest 3:\tShould reject the update of a missing entry at submit: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould reject the update of a missing entry at submit.", success)

			del := signTx(t, ownerKey, 1, database.TxDelete, "missing", "")
			if err := st.SubmitWalletTransaction(del.SignedTx); !errors.Is(err, database.ErrEntryNotFound) {
				t.Fatalf("\t%s\tTest 3:\tShould reject the delete of a missing entry at submit: %v", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould reject the delete of a missing entry at submit.", success)
		}
	}
}

func Test_Queries(t *testing.T) {
	t.Log("Given the need to query chain state.")
	{
		t.Logf("\tTest 0:\tWhen reading slots back by number.")
		{
			ownerKey, st := newState(t, 1_000_000)

			submit(t, st, signTx(t, ownerKey, 1, database.TxCreate, "first", "hello"))
			if _, err := st.SealSlot(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to seal slot 1: %v", failed, err)
			}

			submit(t, st, signTx(t, ownerKey, 2, database.TxCreate, "second", "world"))
			if _, err := st.SealSlot(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to seal slot 2: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to seal two slots.", success)

			slots := st.QuerySlotsByNumber(1, 2)
			if len(slots) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould read both slots back. got %d", failed, len(slots))
			}
			t.Logf("\t%s\tTest 0:\tShould read both slots back.", success)

			if slots[1].Header.PrevSlotHash != slots[0].Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould chain slot 2 to slot 1.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould chain slot 2 to slot 1.", success)

			latest := st.QuerySlotsByNumber(state.QueryLatest, state.QueryLatest)
			if len(latest) != 1 || latest[0].Header.Number != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould resolve the latest slot query.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould resolve the latest slot query.", success)

			if st.EntryCount() != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould count 2 entries. got %d", failed, st.EntryCount())
			}
			t.Logf("\t%s\tTest 0:\tShould count 2 entries.", success)
		}
	}
}

// =============================================================================

func newState(t *testing.T, balance uint64) (*ecdsa.PrivateKey, *state.State) {
	t.Helper()

	privateKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to generate a key: %v", failed, err)
	}

	strg, err := memory.New()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to open storage: %v", failed, err)
	}

	accountID := database.PublicKeyToAccountID(privateKey.PublicKey)

	gen := genesis.Genesis{
		ChainID:      1,
		ProgramID:    programID,
		TransPerSlot: 16,
		RentPerByte:  10,
		Balances:     map[string]uint64{string(accountID): balance},
	}

	st, err := state.New(state.Config{Genesis: gen, Storage: strg})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct state: %v", failed, err)
	}

	return privateKey, st
}

func submit(t *testing.T, st *state.State, tx database.SlotTx) {
	t.Helper()

	if err := st.UpsertNodeTransaction(tx); err != nil {
		t.Fatalf("\t%s\tShould be able to submit transaction: %v", failed, err)
	}
}

func signTx(t *testing.T, privateKey *ecdsa.PrivateKey, nonce uint64, kind database.TxKind, title string, message string) database.SlotTx {
	t.Helper()

	tx, err := database.NewTx(1, nonce, kind, title, message)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
	}

	signedTx, err := tx.Sign(privateKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to sign a transaction: %v", failed, err)
	}

	return database.NewSlotTx(signedTx)
}
