package commands

import (
	"fmt"
	"net/http"
)

// Status prints the node's current chain position.
func Status(node Node) error {
	var status struct {
		LatestSlotHash   string `json:"latest_slot_hash"`
		LatestSlotNumber uint64 `json:"latest_slot_number"`
		EntryCount       int    `json:"entry_count"`
		Uncommitted      int    `json:"uncommitted"`
	}

	if err := node.call(http.MethodGet, "/v1/node/status", &status); err != nil {
		return err
	}

	fmt.Printf("latest slot : %d\n", status.LatestSlotNumber)
	fmt.Printf("slot hash   : %s\n", status.LatestSlotHash)
	fmt.Printf("entries     : %d\n", status.EntryCount)
	fmt.Printf("uncommitted : %d\n", status.Uncommitted)

	return nil
}
