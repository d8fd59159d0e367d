package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a journal entry and reclaim its rent",
	Run:   deleteRun,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().StringVarP(&entryTitle, "title", "t", "", "Title of the journal entry.")
	deleteCmd.MarkFlagRequired("title")
}

func deleteRun(cmd *cobra.Command, args []string) {
	privateKey, err := loadPrivateKey()
	if err != nil {
		log.Fatal(err)
	}

	if _, err := newClient().DeleteJournalEntry(context.Background(), privateKey, entryTitle); err != nil {
		log.Fatal(err)
	}
}
