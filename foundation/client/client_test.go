package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/journal-labs/journalchain/foundation/client"
	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/genesis"
	"github.com/stretchr/testify/require"
)

const programID = "F1HeAZG88A1DKV33VnLMDZNpZcenbazt5fEo1aA364R9"

// fakeNode is a stand-in for the node's public API. It records what the
// client posted and counts query hits so caching behavior can be asserted.
type fakeNode struct {
	*httptest.Server

	entriesHits atomic.Int64
	accountHits atomic.Int64

	submitted []database.SignedTx
	accounts  map[string]uint64
}

func newFakeNode(t *testing.T) *fakeNode {
	t.Helper()

	fn := fakeNode{
		accounts: make(map[string]uint64),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/genesis", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(genesis.Genesis{ChainID: 1, ProgramID: programID, RentPerByte: 10})
	})

	mux.HandleFunc("GET /v1/entries/list", func(w http.ResponseWriter, r *http.Request) {
		fn.entriesHits.Add(1)
		json.NewEncoder(w).Encode([]database.JournalEntry{{Title: "seed", Message: "seed message"}})
	})

	mux.HandleFunc("GET /v1/accounts/list/", func(w http.ResponseWriter, r *http.Request) {
		fn.accountHits.Add(1)

		accountID := strings.TrimPrefix(r.URL.Path, "/v1/accounts/list/")
		nonce, exists := fn.accounts[accountID]
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "account does not exist"})
			return
		}

		json.NewEncoder(w).Encode(client.AccountInfo{Account: database.AccountID(accountID), Nonce: nonce, Balance: 1_000_000})
	})

	mux.HandleFunc("POST /v1/tx/submit", func(w http.ResponseWriter, r *http.Request) {
		var signedTx database.SignedTx
		if err := json.NewDecoder(r.Body).Decode(&signedTx); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		if err := signedTx.Validate(1); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}

		fn.submitted = append(fn.submitted, signedTx)
		json.NewEncoder(w).Encode(map[string]string{"status": "transaction added to pending pool", "signature": signedTx.SignatureString()})
	})

	fn.Server = httptest.NewServer(mux)
	t.Cleanup(fn.Server.Close)

	return &fn
}

// recordingNotifier captures the toasts the client emits.
type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

// =============================================================================

func Test_CreateSignsAndSubmits(t *testing.T) {
	fn := newFakeNode(t)
	notifier := recordingNotifier{}

	c := client.New(fn.URL, client.WithNotifier(&notifier))

	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	ownerID := database.PublicKeyToAccountID(privateKey.PublicKey)

	sig, err := c.CreateJournalEntry(context.Background(), privateKey, "my title", "my message")
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	require.Len(t, fn.submitted, 1)
	tx := fn.submitted[0]
	require.Equal(t, database.TxCreate, tx.Kind)
	require.Equal(t, "my title", tx.Title)
	require.Equal(t, "my message", tx.Message)
	require.Equal(t, uint64(1), tx.Nonce)

	// The node never receives the owner, only the signature.
	from, err := tx.FromAccount()
	require.NoError(t, err)
	require.Equal(t, ownerID, from)

	require.Len(t, notifier.successes, 1)
	require.Contains(t, notifier.successes[0], sig)
	require.Empty(t, notifier.errors)
}

func Test_LocalNonceTracking(t *testing.T) {
	fn := newFakeNode(t)

	c := client.New(fn.URL, client.WithCacheTTL(time.Minute))

	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	// The node still reports the account as unknown for both submissions.
	// The client must not reuse nonce 1 for the second mutation.
	_, err = c.CreateJournalEntry(context.Background(), privateKey, "one", "first")
	require.NoError(t, err)
	_, err = c.CreateJournalEntry(context.Background(), privateKey, "two", "second")
	require.NoError(t, err)

	require.Len(t, fn.submitted, 2)
	require.Equal(t, uint64(1), fn.submitted[0].Nonce)
	require.Equal(t, uint64(2), fn.submitted[1].Nonce)
}

func Test_QueryCacheInvalidation(t *testing.T) {
	fn := newFakeNode(t)

	c := client.New(fn.URL, client.WithCacheTTL(time.Minute))

	// Two reads, one fetch.
	_, err := c.AllEntries(context.Background())
	require.NoError(t, err)
	_, err = c.AllEntries(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), fn.entriesHits.Load())

	// A mutation invalidates the entry queries, so the next read refetches.
	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	_, err = c.CreateJournalEntry(context.Background(), privateKey, "title", "message")
	require.NoError(t, err)

	_, err = c.AllEntries(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), fn.entriesHits.Load())
}

func Test_AccountNotFound(t *testing.T) {
	fn := newFakeNode(t)

	c := client.New(fn.URL)

	_, err := c.Account(context.Background(), "tEfntg7bfmjCKFpYsW1zUuVRX48")
	require.ErrorIs(t, err, client.ErrAccountNotFound)
}

func Test_SubmitFailureNotifies(t *testing.T) {
	fn := newFakeNode(t)
	notifier := recordingNotifier{}

	c := client.New(fn.URL, client.WithNotifier(&notifier))

	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)

	// Title beyond the program limit: the construction fails before any
	// bytes hit the wire, and the failure surfaces as an error toast.
	longTitle := strings.Repeat("x", 51)
	_, err = c.CreateJournalEntry(context.Background(), privateKey, longTitle, "message")
	require.Error(t, err)
	require.Empty(t, fn.submitted)

	require.Len(t, notifier.errors, 1)
	require.Contains(t, notifier.errors[0], fmt.Sprintf("title exceeds %d bytes", database.TitleMaxLen))
}
