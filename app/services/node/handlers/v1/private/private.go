// Package private maintains the group of handlers for node administration.
package private

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	v1 "github.com/journal-labs/journalchain/business/web/v1"
	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/state"
	"github.com/journal-labs/journalchain/foundation/nameservice"
	"github.com/journal-labs/journalchain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node administration endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
}

// nodeStatus is the live view of the node served by the status endpoint.
type nodeStatus struct {
	LatestSlotHash   string `json:"latest_slot_hash"`
	LatestSlotNumber uint64 `json:"latest_slot_number"`
	EntryCount       int    `json:"entry_count"`
	Uncommitted      int    `json:"uncommitted"`
}

// SubmitNodeTransaction accepts a transaction directly into the pending pool
// without waking the sealing worker. Used by tooling that seals manually.
func (h Handlers) SubmitNodeTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var tx database.SlotTx
	if err := web.Decode(r, &tx); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	h.Log.Infow("add node tran", "traceid", v.TraceID, "from:nonce", tx, "kind", tx.Kind)
	if err := h.State.UpsertNodeTransaction(tx); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to pending pool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SealSlot forces the node to seal a slot from the pending transactions
// right away instead of waiting for the next sealing interval.
func (h Handlers) SealSlot(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	slot, err := h.State.SealSlot()
	if err != nil {
		if errors.Is(err, state.ErrNoTransactions) {
			return v1.NewRequestError(err, http.StatusConflict)
		}
		return err
	}

	return web.Respond(ctx, w, database.NewSlotData(slot), http.StatusOK)
}

// Status returns the current status of the node.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latestSlot := h.State.LatestSlot()

	status := nodeStatus{
		LatestSlotHash:   latestSlot.Hash(),
		LatestSlotNumber: latestSlot.Header.Number,
		EntryCount:       h.State.EntryCount(),
		Uncommitted:      len(h.State.PendingTransactions()),
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// SlotsByNumber returns the persisted slots for the specified to/from range.
func (h Handlers) SlotsByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fromStr := web.Param(r, "from")
	if fromStr == "latest" || fromStr == "" {
		fromStr = fmt.Sprintf("%d", state.QueryLatest)
	}

	toStr := web.Param(r, "to")
	if toStr == "latest" || toStr == "" {
		toStr = fmt.Sprintf("%d", state.QueryLatest)
	}

	from, err := strconv.ParseUint(fromStr, 10, 64)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}
	to, err := strconv.ParseUint(toStr, 10, 64)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	if from > to {
		return v1.NewRequestError(errors.New("from greater than to"), http.StatusBadRequest)
	}

	slots := h.State.QuerySlotsByNumber(from, to)
	if len(slots) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	slotData := make([]database.SlotData, len(slots))
	for i, slot := range slots {
		slotData[i] = database.NewSlotData(slot)
	}

	return web.Respond(ctx, w, slotData, http.StatusOK)
}
