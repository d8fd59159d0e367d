package txpool_test

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/txpool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Pool(t *testing.T) {
	t.Log("Given the need to manage the pending transaction pool.")
	{
		t.Logf("\tTest 0:\tWhen an owner submits transactions out of order.")
		{
			ownerKey := newKey(t)

			pool := txpool.New()
			for _, nonce := range []uint64{3, 1, 2} {
				if err := pool.Upsert(signTx(t, ownerKey, nonce, "message")); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to upsert transaction: %v", failed, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to upsert transactions.", success)

			if pool.Count() != 3 {
				t.Fatalf("\t%s\tTest 0:\tShould have 3 transactions in the pool. got %d", failed, pool.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould have 3 transactions in the pool.", success)

			txs := pool.PickBest(-1)
			for i, tx := range txs {
				if tx.Nonce != uint64(i+1) {
					t.Fatalf("\t%s\tTest 0:\tShould order the owner's transactions by nonce. got %d at %d", failed, tx.Nonce, i)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould order the owner's transactions by nonce.", success)

			txs = pool.PickBest(2)
			if len(txs) != 2 || txs[0].Nonce != 1 || txs[1].Nonce != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould pick the lowest nonces first.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould pick the lowest nonces first.", success)
		}

		t.Logf("\tTest 1:\tWhen an owner re-submits a pending nonce.")
		{
			ownerKey := newKey(t)

			pool := txpool.New()
			if err := pool.Upsert(signTx(t, ownerKey, 1, "first try")); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to upsert transaction: %v", failed, err)
			}

			replacement := signTx(t, ownerKey, 1, "second try")
			if err := pool.Upsert(replacement); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to upsert the replacement: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to upsert the replacement.", success)

			if pool.Count() != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould keep a single transaction for the nonce. got %d", failed, pool.Count())
			}
			t.Logf("\t%s\tTest 1:\tShould keep a single transaction for the nonce.", success)

			txs := pool.PickBest(-1)
			if txs[0].Message != "second try" {
				t.Fatalf("\t%s\tTest 1:\tShould keep the replacement. got %q", failed, txs[0].Message)
			}
			t.Logf("\t%s\tTest 1:\tShould keep the replacement.", success)
		}

		t.Logf("\tTest 2:\tWhen transactions are deleted and truncated.")
		{
			ownerKey := newKey(t)

			pool := txpool.New()
			tx1 := signTx(t, ownerKey, 1, "one")
			tx2 := signTx(t, ownerKey, 2, "two")
			pool.Upsert(tx1)
			pool.Upsert(tx2)

			if err := pool.Delete(tx1); err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to delete a transaction: %v", failed, err)
			}
			if pool.Count() != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould have 1 transaction left. got %d", failed, pool.Count())
			}
			t.Logf("\t%s\tTest 2:\tShould be able to delete a transaction.", success)

			pool.Truncate()
			if pool.Count() != 0 {
				t.Fatalf("\t%s\tTest 2:\tShould have an empty pool. got %d", failed, pool.Count())
			}
			t.Logf("\t%s\tTest 2:\tShould have an empty pool after truncate.", success)
		}
	}
}

// =============================================================================

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()

	privateKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to generate a key: %v", failed, err)
	}

	return privateKey
}

func signTx(t *testing.T, privateKey *ecdsa.PrivateKey, nonce uint64, message string) database.SlotTx {
	t.Helper()

	tx, err := database.NewTx(1, nonce, database.TxCreate, "title", message)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
	}

	signedTx, err := tx.Sign(privateKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to sign a transaction: %v", failed, err)
	}

	return database.NewSlotTx(signedTx)
}
