package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

var (
	entryTitle   string
	entryMessage string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new journal entry",
	Run:   createRun,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVarP(&entryTitle, "title", "t", "", "Title of the journal entry.")
	createCmd.Flags().StringVarP(&entryMessage, "message", "m", "", "Message of the journal entry.")
	createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagRequired("message")
}

func createRun(cmd *cobra.Command, args []string) {
	privateKey, err := loadPrivateKey()
	if err != nil {
		log.Fatal(err)
	}

	if _, err := newClient().CreateJournalEntry(context.Background(), privateKey, entryTitle, entryMessage); err != nil {
		log.Fatal(err)
	}
}
