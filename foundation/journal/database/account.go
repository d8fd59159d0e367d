package database

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mr-tron/base58"
)

// accountLength is the number of bytes in a raw account identifier.
const accountLength = 20

// Account represents information stored in the database for an individual
// account. Balances are expressed in lamports.
type Account struct {
	AccountID AccountID
	Nonce     uint64
	Balance   uint64
}

// newAccount constructs a new account value for use.
func newAccount(accountID AccountID, balance uint64) Account {
	return Account{
		AccountID: accountID,
		Balance:   balance,
	}
}

// =============================================================================

// AccountID represents an account id that is used to sign transactions and is
// associated with journal entries on the chain. The string is the base58
// encoding of a 20 byte public key hash.
type AccountID string

// ToAccountID converts a base58-encoded string to an account id and validates
// the string is formatted correctly.
func ToAccountID(s string) (AccountID, error) {
	a := AccountID(s)
	if !a.IsAccountID() {
		return "", errors.New("invalid account format")
	}

	return a, nil
}

// PublicKeyToAccountID converts the public key to an account id value.
func PublicKeyToAccountID(pk ecdsa.PublicKey) AccountID {
	return AccountID(base58.Encode(crypto.PubkeyToAddress(pk).Bytes()))
}

// IsAccountID verifies whether the underlying data represents a valid
// base58-encoded account.
func (a AccountID) IsAccountID() bool {
	data, err := base58.Decode(string(a))
	if err != nil {
		return false
	}

	return len(data) == accountLength
}

// bytes returns the raw bytes for the account id.
func (a AccountID) bytes() ([]byte, error) {
	return base58.Decode(string(a))
}

// =============================================================================

// byAccount provides sorting support by the account id value.
type byAccount []Account

// Len returns the number of accounts in the list.
func (ba byAccount) Len() int {
	return len(ba)
}

// Less helps to sort the list by account id in ascending order to keep the
// accounts in the right order of processing.
func (ba byAccount) Less(i, j int) bool {
	return ba[i].AccountID < ba[j].AccountID
}

// Swap moves accounts in the order of the account id value.
func (ba byAccount) Swap(i, j int) {
	ba[i], ba[j] = ba[j], ba[i]
}
