package memory_test

import (
	"testing"

	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/database/storage/memory"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Memory(t *testing.T) {
	t.Log("Given the need to store slots in memory.")
	{
		t.Logf("\tTest 0:\tWhen writing slots in and out of order.")
		{
			strg, err := memory.New()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open storage: %v", failed, err)
			}

			if err := strg.Write(database.SlotData{Hash: "0xaa", Header: database.SlotHeader{Number: 1}}); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write slot 1: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write slot 1.", success)

			if err := strg.Write(database.SlotData{Hash: "0xcc", Header: database.SlotHeader{Number: 3}}); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould reject an out of order slot.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject an out of order slot.", success)

			slotData, err := strg.GetSlot(1)
			if err != nil || slotData.Hash != "0xaa" {
				t.Fatalf("\t%s\tTest 0:\tShould read slot 1 back: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould read slot 1 back.", success)

			if _, err := strg.GetSlot(2); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould not find a missing slot.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not find a missing slot.", success)

			if err := strg.Reset(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to reset storage: %v", failed, err)
			}
			if _, err := strg.GetSlot(1); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould have no slots after reset.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have no slots after reset.", success)
		}
	}
}
