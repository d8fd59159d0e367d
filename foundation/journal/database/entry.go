package database

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// Limits enforced on journal entry content. These mirror the account space
// reserved by the on-chain program.
const (
	TitleMaxLen   = 50
	MessageMaxLen = 1000
)

// Account space accounting. An entry account holds a discriminator, the
// owner key and two length-prefixed strings.
const (
	discriminatorSize = 8
	ownerKeySize      = 32
	lenPrefixSize     = 4
)

// EntryAddress represents the program derived address of a journal entry.
// It is the base58 encoding of a 32 byte hash over the derivation seeds.
type EntryAddress string

// ToEntryAddress converts a base58-encoded string to an entry address and
// validates the string is formatted correctly.
func ToEntryAddress(s string) (EntryAddress, error) {
	data, err := base58.Decode(s)
	if err != nil || len(data) != sha256.Size {
		return "", errors.New("invalid entry address format")
	}

	return EntryAddress(s), nil
}

// DeriveEntryAddress computes the deterministic address of the journal entry
// for the specified owner and title. The seed order (title bytes, owner key,
// program id) binds an entry to its owner: the same title from two different
// owners derives two different addresses.
func DeriveEntryAddress(programID string, owner AccountID, title string) (EntryAddress, error) {
	if title == "" {
		return "", errors.New("title must not be empty")
	}

	program, err := base58.Decode(programID)
	if err != nil {
		return "", fmt.Errorf("invalid program id: %w", err)
	}

	ownerBytes, err := owner.bytes()
	if err != nil {
		return "", fmt.Errorf("invalid owner account: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(title))
	h.Write(ownerBytes)
	h.Write(program)

	return EntryAddress(base58.Encode(h.Sum(nil))), nil
}

// =============================================================================

// JournalEntry represents the state stored for a single journal entry
// account. The title is immutable after creation since it is part of the
// address derivation.
type JournalEntry struct {
	Address     EntryAddress `json:"address"`
	Owner       AccountID    `json:"owner"`
	Title       string       `json:"title"`
	Message     string       `json:"message"`
	RentDeposit uint64       `json:"rent_deposit"`
	CreatedSlot uint64       `json:"created_slot"`
	UpdatedSlot uint64       `json:"updated_slot"`
}

// EntrySpace returns the number of bytes of account space the entry with
// the specified content occupies.
func EntrySpace(title string, message string) uint64 {
	return discriminatorSize + ownerKeySize + lenPrefixSize + uint64(len(title)) + lenPrefixSize + uint64(len(message))
}

// ValidateContent checks the journal entry content against the account
// space limits.
func ValidateContent(title string, message string) error {
	if title == "" {
		return errors.New("title must not be empty")
	}

	if len(title) > TitleMaxLen {
		return fmt.Errorf("title exceeds %d bytes", TitleMaxLen)
	}

	if len(message) > MessageMaxLen {
		return fmt.Errorf("message exceeds %d bytes", MessageMaxLen)
	}

	return nil
}

// =============================================================================

// byEntryTitle provides sorting support by owner then title.
type byEntryTitle []JournalEntry

// Len returns the number of entries in the list.
func (be byEntryTitle) Len() int {
	return len(be)
}

// Less helps to sort the list by owner and title in ascending order.
func (be byEntryTitle) Less(i, j int) bool {
	if be[i].Owner != be[j].Owner {
		return be[i].Owner < be[j].Owner
	}
	return be[i].Title < be[j].Title
}

// Swap moves entries in the order of the owner and title values.
func (be byEntryTitle) Swap(i, j int) {
	be[i], be[j] = be[j], be[i]
}
