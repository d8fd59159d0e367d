// Package txpool maintains the pool of transactions waiting to be sealed
// into a slot.
package txpool

import (
	"fmt"
	"sort"
	"sync"

	"github.com/journal-labs/journalchain/foundation/journal/database"
)

// TxPool represents a cache of transactions organized by owner:nonce.
type TxPool struct {
	mu   sync.RWMutex
	pool map[string]database.SlotTx
}

// New constructs a new transaction pool.
func New() *TxPool {
	return &TxPool{
		pool: make(map[string]database.SlotTx),
	}
}

// Count returns the current number of transactions in the pool.
func (tp *TxPool) Count() int {
	tp.mu.RLock()
	defer tp.mu.RUnlock()

	return len(tp.pool)
}

// Upsert adds or replaces a transaction in the pool. Replacement lets an
// owner re-submit a transaction for a nonce that hasn't sealed yet.
func (tp *TxPool) Upsert(tx database.SlotTx) error {
	key, err := mapKey(tx)
	if err != nil {
		return err
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()

	tp.pool[key] = tx

	return nil
}

// Delete removes a transaction from the pool.
func (tp *TxPool) Delete(tx database.SlotTx) error {
	key, err := mapKey(tx)
	if err != nil {
		return err
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()

	delete(tp.pool, key)

	return nil
}

// Truncate clears all the transactions from the pool.
func (tp *TxPool) Truncate() {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	tp.pool = make(map[string]database.SlotTx)
}

// Copy returns a list of the current transactions in the pool in no
// particular order.
func (tp *TxPool) Copy() []database.SlotTx {
	tp.mu.RLock()
	defer tp.mu.RUnlock()

	txs := make([]database.SlotTx, 0, len(tp.pool))
	for _, tx := range tp.pool {
		txs = append(txs, tx)
	}

	return txs
}

// PickBest returns up to howMany transactions for the next slot, ordered by
// owner then nonce so an owner's transactions always apply in nonce order.
// Pass -1 for all pending transactions.
func (tp *TxPool) PickBest(howMany int) []database.SlotTx {
	txs := tp.Copy()

	sort.Slice(txs, func(i, j int) bool {
		iFrom, _ := txs[i].FromAccount()
		jFrom, _ := txs[j].FromAccount()
		if iFrom != jFrom {
			return iFrom < jFrom
		}

		return txs[i].Nonce < txs[j].Nonce
	})

	if howMany == -1 || howMany > len(txs) {
		howMany = len(txs)
	}

	return txs[:howMany]
}

// =============================================================================

// mapKey is used to generate the map key.
func mapKey(tx database.SlotTx) (string, error) {
	account, err := tx.FromAccount()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s:%d", account, tx.Nonce), nil
}
