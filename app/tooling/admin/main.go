// This program performs administrative tasks against a running journal node.
package main

import (
	"fmt"
	"os"

	"github.com/journal-labs/journalchain/app/tooling/admin/commands"
	"github.com/journal-labs/journalchain/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	if len(os.Args) < 2 {
		fmt.Println("admin <status|seal|slots> [args]")
		return nil
	}

	// The admin tool talks to the node's private API. The url and shared
	// secret come from the environment so they aren't in shell history.
	node := commands.Node{
		URL:    envOrDefault("NODE_PRIVATE_URL", "http://localhost:9080"),
		Secret: envOrDefault("NODE_AUTH_SECRET", "secret"),
	}

	return processCommands(os.Args, node)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args []string, node commands.Node) error {
	switch args[1] {
	case "status":
		if err := commands.Status(node); err != nil {
			return fmt.Errorf("getting node status: %w", err)
		}
	case "seal":
		if err := commands.Seal(node); err != nil {
			return fmt.Errorf("sealing slot: %w", err)
		}
	case "slots":
		if err := commands.Slots(args, node); err != nil {
			return fmt.Errorf("getting slots: %w", err)
		}
	default:
		fmt.Println("admin <status|seal|slots> [args]")
	}

	return nil
}

func envOrDefault(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
