// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	v1 "github.com/journal-labs/journalchain/business/web/v1"
	"github.com/journal-labs/journalchain/foundation/events"
	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/state"
	"github.com/journal-labs/journalchain/foundation/nameservice"
	"github.com/journal-labs/journalchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public journal node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitWalletTransaction adds a new user transaction to the pending pool.
func (h Handlers) SubmitWalletTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app submitTx
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	signedTx := app.toSignedTx()

	h.Log.Infow("add user tran", "traceid", v.TraceID, "from:nonce", signedTx, "kind", signedTx.Kind, "title", signedTx.Title)
	if err := h.State.SubmitWalletTransaction(signedTx); err != nil {
		switch {
		case errors.Is(err, database.ErrEntryExists):
			return v1.NewRequestError(err, http.StatusConflict)
		case errors.Is(err, database.ErrEntryNotFound):
			return v1.NewRequestError(err, http.StatusNotFound)
		}
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := submitResult{
		Status:    "transaction added to pending pool",
		Signature: signedTx.SignatureString(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.Genesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Pending returns the set of uncommitted transactions.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pool := h.State.PendingTransactions()

	trans := make([]tx, 0, len(pool))
	for _, tran := range pool {
		account, err := tran.FromAccount()
		if err != nil {
			continue
		}

		trans = append(trans, tx{
			FromAccount: account,
			FromName:    h.NS.Lookup(account),
			Kind:        tran.Kind,
			Title:       tran.Title,
			Message:     tran.Message,
			To:          tran.To,
			Lamports:    tran.Lamports,
			Nonce:       tran.Nonce,
			TimeStamp:   tran.TimeStamp,
			Sig:         tran.SignatureString(),
		})
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// Accounts returns the current balance and nonce for all accounts.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accounts := h.State.Accounts()

	acts := make([]info, 0, len(accounts))
	for _, account := range accounts {
		acts = append(acts, info{
			Account: account.AccountID,
			Name:    h.NS.Lookup(account.AccountID),
			Balance: account.Balance,
			Nonce:   account.Nonce,
		})
	}

	ai := actInfo{
		LatestSlot:  h.State.LatestSlot().Hash(),
		Uncommitted: len(h.State.PendingTransactions()),
		Accounts:    acts,
	}

	return web.Respond(ctx, w, ai, http.StatusOK)
}

// Account returns the balance and nonce for a single account.
func (h Handlers) Account(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID, err := database.ToAccountID(web.Param(r, "account"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	account, err := h.State.QueryAccount(accountID)
	if err != nil {
		if errors.Is(err, database.ErrAccountNotFound) {
			return v1.NewRequestError(err, http.StatusNotFound)
		}
		return err
	}

	act := info{
		Account: account.AccountID,
		Name:    h.NS.Lookup(account.AccountID),
		Balance: account.Balance,
		Nonce:   account.Nonce,
	}

	return web.Respond(ctx, w, act, http.StatusOK)
}

// AllEntries returns every journal entry on the chain.
func (h Handlers) AllEntries(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.QueryAllEntries(), http.StatusOK)
}

// EntriesByOwner returns the journal entries owned by the specified account.
func (h Handlers) EntriesByOwner(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	owner, err := database.ToAccountID(web.Param(r, "owner"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	return web.Respond(ctx, w, h.State.QueryEntriesByOwner(owner), http.StatusOK)
}

// EntryByOwnerTitle returns the journal entry stored at the address derived
// from the owner and title pair.
func (h Handlers) EntryByOwnerTitle(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	owner, err := database.ToAccountID(web.Param(r, "owner"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	entry, err := h.State.QueryEntryByOwnerTitle(owner, web.Param(r, "title"))
	if err != nil {
		if errors.Is(err, database.ErrEntryNotFound) {
			return v1.NewRequestError(err, http.StatusNotFound)
		}
		return err
	}

	return web.Respond(ctx, w, entry, http.StatusOK)
}
