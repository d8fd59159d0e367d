// Package client provides the data access layer for journal chain
// applications like the wallet. Mutations sign and submit transactions to
// the node, notify their outcome and invalidate the affected cached
// queries. Queries hit the node's public API through a short lived cache,
// so a read after a mutation refetches fresh state.
package client

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/genesis"
)

// defaultCacheTTL bounds how stale a cached query can get even without a
// mutation from this client.
const defaultCacheTTL = 5 * time.Second

// Client provides access to the node's public API.
type Client struct {
	url      string
	http     *http.Client
	cache    *queryCache
	notifier Notifier

	genMu sync.Mutex
	gen   *genesis.Genesis

	nonceMu sync.Mutex
	nonces  map[database.AccountID]uint64
}

// Option can be used to configure the client.
type Option func(*Client)

// WithNotifier sets the notifier that receives transaction outcomes.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithHTTPClient overrides the http client used for node calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// WithCacheTTL overrides the query cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = newQueryCache(ttl)
	}
}

// New constructs a client for the node at the specified url.
func New(url string, options ...Option) *Client {
	c := Client{
		url:      url,
		http:     &http.Client{Timeout: 10 * time.Second},
		cache:    newQueryCache(defaultCacheTTL),
		notifier: nopNotifier{},
		nonces:   make(map[database.AccountID]uint64),
	}

	for _, option := range options {
		option(&c)
	}

	return &c
}

// =============================================================================
// Mutations

// CreateJournalEntry signs and submits a create transaction for the
// specified title and message. It returns the transaction signature.
func (c *Client) CreateJournalEntry(ctx context.Context, privateKey *ecdsa.PrivateKey, title string, message string) (string, error) {
	return c.submitEntryTx(ctx, privateKey, database.TxCreate, title, message)
}

// UpdateJournalEntry signs and submits an update transaction replacing the
// message of the entry with the specified title. It returns the
// transaction signature.
func (c *Client) UpdateJournalEntry(ctx context.Context, privateKey *ecdsa.PrivateKey, title string, message string) (string, error) {
	return c.submitEntryTx(ctx, privateKey, database.TxUpdate, title, message)
}

// DeleteJournalEntry signs and submits a delete transaction closing the
// entry with the specified title. It returns the transaction signature.
func (c *Client) DeleteJournalEntry(ctx context.Context, privateKey *ecdsa.PrivateKey, title string) (string, error) {
	return c.submitEntryTx(ctx, privateKey, database.TxDelete, title, "")
}

// Transfer signs and submits a system transfer moving lamports to the
// specified account. It returns the transaction signature.
func (c *Client) Transfer(ctx context.Context, privateKey *ecdsa.PrivateKey, to database.AccountID, lamports uint64) (string, error) {
	gen, err := c.Genesis(ctx)
	if err != nil {
		return "", c.notifyErr(err)
	}

	nonce, err := c.nextNonce(ctx, database.PublicKeyToAccountID(privateKey.PublicKey))
	if err != nil {
		return "", c.notifyErr(err)
	}

	tx, err := database.NewTransferTx(gen.ChainID, nonce, to, lamports)
	if err != nil {
		return "", c.notifyErr(err)
	}

	return c.signAndSubmit(ctx, privateKey, tx)
}

// submitEntryTx builds, signs and submits a journal entry transaction.
func (c *Client) submitEntryTx(ctx context.Context, privateKey *ecdsa.PrivateKey, kind database.TxKind, title string, message string) (string, error) {
	gen, err := c.Genesis(ctx)
	if err != nil {
		return "", c.notifyErr(err)
	}

	nonce, err := c.nextNonce(ctx, database.PublicKeyToAccountID(privateKey.PublicKey))
	if err != nil {
		return "", c.notifyErr(err)
	}

	tx, err := database.NewTx(gen.ChainID, nonce, kind, title, message)
	if err != nil {
		return "", c.notifyErr(err)
	}

	return c.signAndSubmit(ctx, privateKey, tx)
}

// signAndSubmit signs the transaction and posts it to the node. On success
// the cached queries touched by the mutation are invalidated so the next
// read refetches, and the notifier receives the transaction signature.
func (c *Client) signAndSubmit(ctx context.Context, privateKey *ecdsa.PrivateKey, tx database.Tx) (string, error) {
	signedTx, err := tx.Sign(privateKey)
	if err != nil {
		return "", c.notifyErr(err)
	}

	var result submitResult
	if err := c.post(ctx, "/v1/tx/submit", signedTx, &result); err != nil {
		return "", c.notifyErr(err)
	}

	owner := database.PublicKeyToAccountID(privateKey.PublicKey)
	c.cache.invalidate("entries:", "account:"+string(owner))
	if tx.Kind == database.TxTransfer {
		c.cache.invalidate("account:" + string(tx.To))
	}

	sig := signedTx.SignatureString()
	c.notifier.Success(fmt.Sprintf("transaction sent: %s", sig))

	return sig, nil
}

// =============================================================================
// Queries

// Genesis returns the genesis information for the chain the node serves.
// The result never changes, so it is fetched once and kept.
func (c *Client) Genesis(ctx context.Context) (genesis.Genesis, error) {
	c.genMu.Lock()
	defer c.genMu.Unlock()

	if c.gen != nil {
		return *c.gen, nil
	}

	var gen genesis.Genesis
	if err := c.get(ctx, "/v1/genesis", &gen); err != nil {
		return genesis.Genesis{}, err
	}

	c.gen = &gen
	return gen, nil
}

// Entry fetches the journal entry for the owner and title pair.
func (c *Client) Entry(ctx context.Context, owner database.AccountID, title string) (database.JournalEntry, error) {
	key := fmt.Sprintf("entries:one:%s:%s", owner, title)
	if v, ok := c.cache.get(key); ok {
		return v.(database.JournalEntry), nil
	}

	var entry database.JournalEntry
	if err := c.get(ctx, fmt.Sprintf("/v1/entries/entry/%s/%s", owner, title), &entry); err != nil {
		return database.JournalEntry{}, err
	}

	c.cache.set(key, entry)
	return entry, nil
}

// EntriesByOwner fetches all journal entries owned by the specified
// account.
func (c *Client) EntriesByOwner(ctx context.Context, owner database.AccountID) ([]database.JournalEntry, error) {
	key := "entries:owner:" + string(owner)
	if v, ok := c.cache.get(key); ok {
		return v.([]database.JournalEntry), nil
	}

	var entries []database.JournalEntry
	if err := c.get(ctx, "/v1/entries/list/"+string(owner), &entries); err != nil {
		return nil, err
	}

	c.cache.set(key, entries)
	return entries, nil
}

// AllEntries fetches every journal entry on the chain.
func (c *Client) AllEntries(ctx context.Context) ([]database.JournalEntry, error) {
	key := "entries:all"
	if v, ok := c.cache.get(key); ok {
		return v.([]database.JournalEntry), nil
	}

	var entries []database.JournalEntry
	if err := c.get(ctx, "/v1/entries/list", &entries); err != nil {
		return nil, err
	}

	c.cache.set(key, entries)
	return entries, nil
}

// Account fetches the balance and nonce for the specified account.
func (c *Client) Account(ctx context.Context, accountID database.AccountID) (AccountInfo, error) {
	key := "account:" + string(accountID)
	if v, ok := c.cache.get(key); ok {
		return v.(AccountInfo), nil
	}

	var info AccountInfo
	if err := c.get(ctx, "/v1/accounts/list/"+string(accountID), &info); err != nil {
		return AccountInfo{}, err
	}

	c.cache.set(key, info)
	return info, nil
}

// =============================================================================

// ErrAccountNotFound is returned when the node doesn't know the account.
var ErrAccountNotFound = errors.New("account does not exist")

// nextNonce fetches the account's current nonce from the node and returns
// the next usable value. An unknown account starts at nonce 1. Nonces from
// transactions this client submitted but that haven't sealed yet are
// tracked locally so back-to-back mutations don't collide.
func (c *Client) nextNonce(ctx context.Context, accountID database.AccountID) (uint64, error) {
	var current uint64

	info, err := c.Account(ctx, accountID)
	switch {
	case errors.Is(err, ErrAccountNotFound):
	case err != nil:
		return 0, err
	default:
		current = info.Nonce
	}

	c.nonceMu.Lock()
	defer c.nonceMu.Unlock()

	if pending := c.nonces[accountID]; pending > current {
		current = pending
	}

	next := current + 1
	c.nonces[accountID] = next

	return next, nil
}

// notifyErr forwards the error message to the notifier and returns the
// error unchanged. Mirrors surfacing a failed transaction as an error
// toast.
func (c *Client) notifyErr(err error) error {
	c.notifier.Error(err.Error())
	return err
}

// get performs a GET call against the node's public API.
func (c *Client) get(ctx context.Context, path string, response any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return err
	}

	return c.do(req, response)
}

// post performs a POST call against the node's public API.
func (c *Client) post(ctx context.Context, path string, body any, response any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, response)
}

// do executes the request and decodes either the response or the node's
// error form.
func (c *Client) do(req *http.Request, response any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error == "" {
			return fmt.Errorf("node returned status %d", resp.StatusCode)
		}
		if resp.StatusCode == http.StatusNotFound && er.Error == ErrAccountNotFound.Error() {
			return ErrAccountNotFound
		}
		return errors.New(er.Error)
	}

	if response == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(response)
}
