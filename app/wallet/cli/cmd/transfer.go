package cmd

import (
	"context"
	"log"

	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/spf13/cobra"
)

var (
	transferTo    string
	transferValue uint64
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer lamports to another account",
	Run:   transferRun,
}

func init() {
	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().StringVarP(&transferTo, "to", "t", "", "Account id of the recipient.")
	transferCmd.Flags().Uint64VarP(&transferValue, "lamports", "l", 0, "Lamports to transfer.")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("lamports")
}

func transferRun(cmd *cobra.Command, args []string) {
	privateKey, err := loadPrivateKey()
	if err != nil {
		log.Fatal(err)
	}

	to, err := database.ToAccountID(transferTo)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := newClient().Transfer(context.Background(), privateKey, to, transferValue); err != nil {
		log.Fatal(err)
	}
}
