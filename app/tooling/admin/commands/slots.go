package commands

import (
	"fmt"
	"net/http"

	"github.com/journal-labs/journalchain/foundation/journal/database"
)

// Slots prints the persisted slots for the range on the command line. With
// no range, it prints the latest slot.
func Slots(args []string, node Node) error {
	from, to := "latest", "latest"
	if len(args) > 3 {
		from, to = args[2], args[3]
	}

	var slots []database.SlotData
	if err := node.call(http.MethodGet, fmt.Sprintf("/v1/node/slots/list/%s/%s", from, to), &slots); err != nil {
		return err
	}

	for _, slotData := range slots {
		fmt.Printf("slot %d  hash %s  trans %d\n", slotData.Header.Number, slotData.Hash, len(slotData.Trans))
		for _, tx := range slotData.Trans {
			from, err := tx.FromAccount()
			if err != nil {
				from = "unknown"
			}
			fmt.Printf("  %s kind=%s nonce=%d title=%q\n", from, tx.Kind, tx.Nonce, tx.Title)
		}
	}

	return nil
}
