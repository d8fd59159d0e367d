package commands

import (
	"fmt"
	"net/http"

	"github.com/journal-labs/journalchain/foundation/journal/database"
)

// Seal forces the node to seal the pending transactions into a slot now.
func Seal(node Node) error {
	var slotData database.SlotData

	if err := node.call(http.MethodPost, "/v1/node/slots/seal", &slotData); err != nil {
		return err
	}

	fmt.Printf("sealed slot %d with %d transactions\n", slotData.Header.Number, len(slotData.Trans))
	fmt.Printf("hash: %s\n", slotData.Hash)

	return nil
}
