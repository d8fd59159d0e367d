package database

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/journal-labs/journalchain/foundation/journal/signature"
)

// SlotHeader represents common information required for each slot.
type SlotHeader struct {
	Number       uint64 `json:"number"`         // Slot number in the ledger.
	PrevSlotHash string `json:"prev_slot_hash"` // Hash of the previous slot in the ledger.
	TimeStamp    uint64 `json:"timestamp"`      // Time the slot was sealed.
	TransRoot    string `json:"trans_root"`     // Hash over the ordered transactions in this slot.
}

// Slot represents a group of journal transactions sealed together.
type Slot struct {
	Header SlotHeader
	Trans  []SlotTx
}

// NewSlot constructs the next slot in the ledger from the set of pending
// transactions. There is no mining: the node is the single sealing
// authority, so sealing a slot is just chaining it to the previous one.
func NewSlot(prevSlot Slot, trans []SlotTx) (Slot, error) {

	// When sealing the first slot, the previous slot's hash will be zero.
	prevSlotHash := signature.ZeroHash
	if prevSlot.Header.Number > 0 {
		prevSlotHash = prevSlot.Hash()
	}

	transRoot, err := TransRoot(trans)
	if err != nil {
		return Slot{}, err
	}

	slot := Slot{
		Header: SlotHeader{
			Number:       prevSlot.Header.Number + 1,
			PrevSlotHash: prevSlotHash,
			TimeStamp:    uint64(time.Now().UTC().Unix()),
			TransRoot:    transRoot,
		},
		Trans: trans,
	}

	return slot, nil
}

// TransRoot computes a single hash over the ordered set of transactions.
// The root commits the slot header to the exact transaction set.
func TransRoot(trans []SlotTx) (string, error) {
	h := sha256.New()
	for _, tx := range trans {
		txHash, err := tx.Hash()
		if err != nil {
			return "", err
		}
		h.Write(txHash)
	}

	return hexutil.Encode(h.Sum(nil)), nil
}

// Hash returns the unique hash for the slot.
func (s Slot) Hash() string {
	if s.Header.Number == 0 {
		return signature.ZeroHash
	}

	// Hashing the slot header and not the whole slot. The header commits to
	// the transactions through the TransRoot, so the ledger can be checked
	// with headers alone.
	return signature.Hash(s.Header)
}

// ValidateSlot takes a slot and validates it to be included into the ledger.
func (s Slot) ValidateSlot(previousSlot Slot, evHandler func(v string, args ...any)) error {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ev("database: ValidateSlot: slot[%d]: check: slot number is the next number", s.Header.Number)

	nextNumber := previousSlot.Header.Number + 1
	if s.Header.Number != nextNumber {
		return fmt.Errorf("this slot is not the next number, got %d, exp %d", s.Header.Number, nextNumber)
	}

	ev("database: ValidateSlot: slot[%d]: check: prev hash matches previous slot", s.Header.Number)

	if s.Header.PrevSlotHash != previousSlot.Hash() {
		return fmt.Errorf("previous slot hash doesn't match our known previous, got %s, exp %s", s.Header.PrevSlotHash, previousSlot.Hash())
	}

	ev("database: ValidateSlot: slot[%d]: check: trans root matches transactions", s.Header.Number)

	transRoot, err := TransRoot(s.Trans)
	if err != nil {
		return err
	}
	if s.Header.TransRoot != transRoot {
		return fmt.Errorf("transaction root doesn't match transactions, got %s, exp %s", transRoot, s.Header.TransRoot)
	}

	if previousSlot.Header.TimeStamp > 0 {
		ev("database: ValidateSlot: slot[%d]: check: timestamp is not before previous slot", s.Header.Number)

		if s.Header.TimeStamp < previousSlot.Header.TimeStamp {
			return fmt.Errorf("slot timestamp is before previous slot, previous %d, slot %d", previousSlot.Header.TimeStamp, s.Header.TimeStamp)
		}
	}

	return nil
}

// =============================================================================

// SlotData represents what can be serialized to disk.
type SlotData struct {
	Hash   string     `json:"hash"`
	Header SlotHeader `json:"header"`
	Trans  []SlotTx   `json:"trans"`
}

// NewSlotData constructs slot data from a slot.
func NewSlotData(slot Slot) SlotData {
	return SlotData{
		Hash:   slot.Hash(),
		Header: slot.Header,
		Trans:  slot.Trans,
	}
}

// ToSlot converts the storage slot data into a usable slot.
func ToSlot(slotData SlotData) (Slot, error) {
	slot := Slot{
		Header: slotData.Header,
		Trans:  slotData.Trans,
	}

	// Make sure the persisted hash still matches the contents.
	if slotData.Hash != slot.Hash() {
		return Slot{}, fmt.Errorf("slot %d contents don't match persisted hash", slotData.Header.Number)
	}

	return slot, nil
}
