package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/spf13/cobra"
)

var listAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries owned by this wallet",
	Run:   listRun,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listAll, "all", false, "List every entry on the chain.")
}

func listRun(cmd *cobra.Command, args []string) {
	c := newClient()

	var entries []database.JournalEntry
	var err error

	switch {
	case listAll:
		entries, err = c.AllEntries(context.Background())

	default:
		privateKey, kerr := loadPrivateKey()
		if kerr != nil {
			log.Fatal(kerr)
		}
		owner := database.PublicKeyToAccountID(privateKey.PublicKey)
		entries, err = c.EntriesByOwner(context.Background(), owner)
	}

	if err != nil {
		log.Fatal(err)
	}

	for _, entry := range entries {
		fmt.Printf("%s\n  owner  : %s\n  title  : %s\n  message: %s\n  rent   : %d lamports\n", entry.Address, entry.Owner, entry.Title, entry.Message, entry.RentDeposit)
	}
}
