package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/journal-labs/journalchain/foundation/client"
	"github.com/journal-labs/journalchain/foundation/journal/database"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the balance and nonce for this wallet",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) {
	privateKey, err := loadPrivateKey()
	if err != nil {
		log.Fatal(err)
	}

	accountID := database.PublicKeyToAccountID(privateKey.PublicKey)
	fmt.Println("For Account:", accountID)

	info, err := newClient().Account(context.Background(), accountID)
	if err != nil {
		if errors.Is(err, client.ErrAccountNotFound) {
			fmt.Println("balance: 0 lamports (account not on chain yet)")
			return
		}
		log.Fatal(err)
	}

	fmt.Printf("balance: %d lamports\nnonce  : %d\n", info.Balance, info.Nonce)
}
