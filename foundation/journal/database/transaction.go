package database

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/journal-labs/journalchain/foundation/journal/signature"
)

// TxKind represents the instruction carried by a transaction.
type TxKind string

// Set of instructions the journal program understands. Transfer is the
// system instruction that moves lamports between accounts so new wallets
// can be funded for rent.
const (
	TxCreate   TxKind = "create"
	TxUpdate   TxKind = "update"
	TxDelete   TxKind = "delete"
	TxTransfer TxKind = "transfer"
)

// entryTxKinds is the set of instruction kinds that touch a journal entry.
var entryTxKinds = map[TxKind]bool{
	TxCreate: true,
	TxUpdate: true,
	TxDelete: true,
}

// =============================================================================

// Tx is the instruction submitted by an owner. The owner is not a field: it
// is recovered from the signature, which is what binds the entry address
// derivation to the signer.
type Tx struct {
	ChainID  uint16    `json:"chain_id"`           // Unique id of the chain the transaction is meant for.
	Nonce    uint64    `json:"nonce"`              // Unique, increasing id for the transaction supplied by the owner.
	Kind     TxKind    `json:"kind"`               // Instruction: create, update, delete or transfer.
	Title    string    `json:"title,omitempty"`    // Entry title, part of the address derivation.
	Message  string    `json:"message,omitempty"`  // Entry message, ignored for delete.
	To       AccountID `json:"to,omitempty"`       // Transfer only: account receiving the lamports.
	Lamports uint64    `json:"lamports,omitempty"` // Transfer only: amount of lamports to move.
}

// NewTx constructs a new journal entry transaction.
func NewTx(chainID uint16, nonce uint64, kind TxKind, title string, message string) (Tx, error) {
	if !entryTxKinds[kind] {
		return Tx{}, fmt.Errorf("unknown instruction kind %q", kind)
	}

	if err := ValidateContent(title, message); err != nil {
		return Tx{}, err
	}

	tx := Tx{
		ChainID: chainID,
		Nonce:   nonce,
		Kind:    kind,
		Title:   title,
		Message: message,
	}

	return tx, nil
}

// NewTransferTx constructs a new system transfer transaction.
func NewTransferTx(chainID uint16, nonce uint64, to AccountID, lamports uint64) (Tx, error) {
	if !to.IsAccountID() {
		return Tx{}, fmt.Errorf("to account is not properly formatted")
	}
	if lamports == 0 {
		return Tx{}, fmt.Errorf("transfer amount must be greater than zero")
	}

	tx := Tx{
		ChainID:  chainID,
		Nonce:    nonce,
		Kind:     TxTransfer,
		To:       to,
		Lamports: lamports,
	}

	return tx, nil
}

// Sign uses the specified private key to sign the transaction.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (SignedTx, error) {

	// Sign the transaction with the private key to produce a signature.
	v, r, s, err := signature.Sign(tx, privateKey)
	if err != nil {
		return SignedTx{}, err
	}

	// Construct the signed transaction by adding the signature
	// in the [R|S|V] format.
	signedTx := SignedTx{
		Tx: tx,
		V:  v,
		R:  r,
		S:  s,
	}

	return signedTx, nil
}

// =============================================================================

// SignedTx is a signed version of the transaction. This is how clients like
// a wallet provide transactions for inclusion into the ledger.
type SignedTx struct {
	Tx
	V *big.Int `json:"v"` // Recovery identifier, either 31 or 32 with journalID.
	R *big.Int `json:"r"` // First coordinate of the ECDSA signature.
	S *big.Int `json:"s"` // Second coordinate of the ECDSA signature.
}

// Validate verifies the transaction has a proper signature that conforms to
// our standards and that the instruction content is within limits.
func (tx SignedTx) Validate(chainID uint16) error {
	if tx.ChainID != chainID {
		return fmt.Errorf("transaction invalid, wrong chain id, got %d, exp %d", tx.ChainID, chainID)
	}

	switch {
	case entryTxKinds[tx.Kind]:
		if err := ValidateContent(tx.Title, tx.Message); err != nil {
			return err
		}

	case tx.Kind == TxTransfer:
		if !tx.To.IsAccountID() {
			return fmt.Errorf("to account is not properly formatted")
		}
		if tx.Lamports == 0 {
			return fmt.Errorf("transfer amount must be greater than zero")
		}

	default:
		return fmt.Errorf("unknown instruction kind %q", tx.Kind)
	}

	if err := signature.VerifySignature(tx.V, tx.R, tx.S); err != nil {
		return err
	}

	return nil
}

// FromAccount extracts the account id that signed the transaction.
func (tx SignedTx) FromAccount() (AccountID, error) {
	publicKey, err := signature.RecoverPublicKey(tx.Tx, tx.V, tx.R, tx.S)
	if err != nil {
		return "", err
	}

	return PublicKeyToAccountID(*publicKey), nil
}

// SignatureString returns the signature as a string.
func (tx SignedTx) SignatureString() string {
	return signature.SignatureString(tx.V, tx.R, tx.S)
}

// String implements the fmt.Stringer interface for logging.
func (tx SignedTx) String() string {
	from, err := tx.FromAccount()
	if err != nil {
		from = "unknown"
	}

	return fmt.Sprintf("%s:%d", from, tx.Nonce)
}

// =============================================================================

// SlotTx represents the transaction as it's recorded inside a slot. This
// includes the time the transaction was received by the node.
type SlotTx struct {
	SignedTx
	TimeStamp uint64 `json:"timestamp"` // The time the transaction was received.
}

// NewSlotTx constructs a new slot transaction.
func NewSlotTx(signedTx SignedTx) SlotTx {
	return SlotTx{
		SignedTx:  signedTx,
		TimeStamp: uint64(time.Now().UTC().UnixMilli()),
	}
}

// Hash returns a hash of the slot transaction. Used for the tamper-evident
// chaining of slots.
func (tx SlotTx) Hash() ([]byte, error) {
	str := signature.Hash(tx)
	return hex.DecodeString(str[2:])
}

// Equals provides an equality check between two slot transactions. If the
// nonce and signatures are the same, the two transactions are the same.
func (tx SlotTx) Equals(otherTx SlotTx) bool {
	if tx.V == nil || otherTx.V == nil {
		return false
	}

	txSig := signature.ToSignatureBytes(tx.V, tx.R, tx.S)
	otherTxSig := signature.ToSignatureBytes(otherTx.V, otherTx.R, otherTx.S)

	return tx.Nonce == otherTx.Nonce && bytes.Equal(txSig, otherTxSig)
}
