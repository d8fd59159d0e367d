package main

import "github.com/journal-labs/journalchain/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
