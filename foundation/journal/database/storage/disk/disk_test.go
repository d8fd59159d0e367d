package disk_test

import (
	"testing"

	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/journal-labs/journalchain/foundation/journal/database/storage/disk"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// =============================================================================

func Test_Disk(t *testing.T) {
	t.Log("Given the need to store slots as files on disk.")
	{
		t.Logf("\tTest 0:\tWhen writing and reading back slots.")
		{
			strg, err := disk.New(t.TempDir())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open storage: %v", failed, err)
			}
			defer strg.Close()
			t.Logf("\t%s\tTest 0:\tShould be able to open storage.", success)

			slots := []database.SlotData{
				{Hash: "0xaa", Header: database.SlotHeader{Number: 1}},
				{Hash: "0xbb", Header: database.SlotHeader{Number: 2, PrevSlotHash: "0xaa"}},
			}
			for _, slotData := range slots {
				if err := strg.Write(slotData); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to write slot %d: %v", failed, slotData.Header.Number, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write slots.", success)

			slotData, err := strg.GetSlot(2)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to read slot 2 back: %v", failed, err)
			}
			if slotData.Hash != "0xbb" {
				t.Fatalf("\t%s\tTest 0:\tShould read the right slot. got %s", failed, slotData.Hash)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to read slot 2 back.", success)

			var count int
			iter := strg.ForEach()
			for _, err := iter.Next(); !iter.Done(); _, err = iter.Next() {
				if err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to iterate the ledger: %v", failed, err)
				}
				count++
			}
			if count != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould iterate both slots. got %d", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould iterate both slots.", success)

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
