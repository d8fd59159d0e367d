package public

import (
	"math/big"

	"github.com/journal-labs/journalchain/business/sys/validate"
	"github.com/journal-labs/journalchain/foundation/journal/database"
)

// submitTx is the payload clients post to submit a signed transaction.
type submitTx struct {
	ChainID  uint16   `json:"chain_id" validate:"required"`
	Nonce    uint64   `json:"nonce" validate:"required"`
	Kind     string   `json:"kind" validate:"required,oneof=create update delete transfer"`
	Title    string   `json:"title" validate:"omitempty,max=50"`
	Message  string   `json:"message" validate:"omitempty,max=1000"`
	To       string   `json:"to"`
	Lamports uint64   `json:"lamports"`
	V        *big.Int `json:"v" validate:"required"`
	R        *big.Int `json:"r" validate:"required"`
	S        *big.Int `json:"s" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (tx submitTx) Validate() error {
	return validate.Check(tx)
}

// toSignedTx converts the app layer model into a signed transaction.
func (tx submitTx) toSignedTx() database.SignedTx {
	return database.SignedTx{
		Tx: database.Tx{
			ChainID:  tx.ChainID,
			Nonce:    tx.Nonce,
			Kind:     database.TxKind(tx.Kind),
			Title:    tx.Title,
			Message:  tx.Message,
			To:       database.AccountID(tx.To),
			Lamports: tx.Lamports,
		},
		V: tx.V,
		R: tx.R,
		S: tx.S,
	}
}

// submitResult is the response for a submitted transaction.
type submitResult struct {
	Status    string `json:"status"`
	Signature string `json:"signature"`
}

// info represents the account details served by the accounts endpoints.
type info struct {
	Account database.AccountID `json:"account"`
	Name    string             `json:"name"`
	Balance uint64             `json:"balance"`
	Nonce   uint64             `json:"nonce"`
}

// actInfo wraps the set of accounts with chain level details.
type actInfo struct {
	LatestSlot  string `json:"latest_slot"`
	Uncommitted int    `json:"uncommitted"`
	Accounts    []info `json:"accounts"`
}

// tx represents a pending transaction in the pool.
type tx struct {
	FromAccount database.AccountID `json:"from"`
	FromName    string             `json:"from_name"`
	Kind        database.TxKind    `json:"kind"`
	Title       string             `json:"title,omitempty"`
	Message     string             `json:"message,omitempty"`
	To          database.AccountID `json:"to,omitempty"`
	Lamports    uint64             `json:"lamports,omitempty"`
	Nonce       uint64             `json:"nonce"`
	TimeStamp   uint64             `json:"timestamp"`
	Sig         string             `json:"sig"`
}
