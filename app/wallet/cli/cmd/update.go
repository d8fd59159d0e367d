package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the message of an existing journal entry",
	Run:   updateRun,
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVarP(&entryTitle, "title", "t", "", "Title of the journal entry.")
	updateCmd.Flags().StringVarP(&entryMessage, "message", "m", "", "New message for the journal entry.")
	updateCmd.MarkFlagRequired("title")
	updateCmd.MarkFlagRequired("message")
}

func updateRun(cmd *cobra.Command, args []string) {
	privateKey, err := loadPrivateKey()
	if err != nil {
		log.Fatal(err)
	}

	if _, err := newClient().UpdateJournalEntry(context.Background(), privateKey, entryTitle, entryMessage); err != nil {
		log.Fatal(err)
	}
}
