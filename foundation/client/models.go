package client

import "github.com/journal-labs/journalchain/foundation/journal/database"

// AccountInfo is the account detail returned by the node's accounts
// endpoints.
type AccountInfo struct {
	Account database.AccountID `json:"account"`
	Name    string             `json:"name"`
	Balance uint64             `json:"balance"`
	Nonce   uint64             `json:"nonce"`
}

// submitResult is the response of the transaction submit endpoint.
type submitResult struct {
	Status    string `json:"status"`
	Signature string `json:"signature"`
}

// errorResponse is the form used by the node for API failures.
type errorResponse struct {
	Error string `json:"error"`
}
