package state

import (
	"github.com/journal-labs/journalchain/foundation/journal/database"
)

// SubmitWalletTransaction accepts a transaction from a wallet for inclusion
// into the ledger.
func (s *State) SubmitWalletTransaction(signedTx database.SignedTx) error {
	if err := s.validateTransaction(signedTx); err != nil {
		return err
	}

	tx := database.NewSlotTx(signedTx)

	if err := s.txPool.Upsert(tx); err != nil {
		return err
	}

	if s.Worker != nil {
		s.Worker.SignalSealSlot()
	}

	return nil
}

// =============================================================================

// validateTransaction takes the signed transaction and validates it has a
// proper signature and other aspects of the data.
func (s *State) validateTransaction(signedTx database.SignedTx) error {
	if err := signedTx.Validate(s.genesis.ChainID); err != nil {
		return err
	}

	if err := s.db.ValidateNonce(signedTx); err != nil {
		return err
	}

	if err := s.db.ValidateEntryState(signedTx); err != nil {
		return err
	}

	return nil
}
