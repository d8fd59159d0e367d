package database

import "errors"

// Set of errors the apply logic can return. Handlers map these to HTTP
// status codes.
var (
	ErrEntryExists       = errors.New("journal entry already exists for this owner and title")
	ErrEntryNotFound     = errors.New("journal entry does not exist")
	ErrNotOwner          = errors.New("signer does not own this journal entry")
	ErrAccountNotFound   = errors.New("account does not exist")
	ErrInsufficientFunds = errors.New("insufficient funds for rent deposit")
)
