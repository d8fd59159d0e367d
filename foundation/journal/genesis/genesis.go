// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date         time.Time         `json:"date"`
	ChainID      uint16            `json:"chain_id"`       // Unique id for this running instance of the chain.
	ProgramID    string            `json:"program_id"`     // Base58 id of the journal program, part of entry address derivation.
	TransPerSlot uint16            `json:"trans_per_slot"` // Maximum number of transactions that can be in a slot.
	RentPerByte  uint64            `json:"rent_per_byte"`  // Lamports deposited per byte of journal entry account space.
	Balances     map[string]uint64 `json:"balances"`       // Initial lamport balances for founding accounts.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Save writes the genesis information to the specified path.
func Save(path string, genesis Genesis) error {
	data, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
