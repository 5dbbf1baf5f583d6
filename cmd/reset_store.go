package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

// resetStoreCmd represents the reset-store command. Dropping the collection
// is destructive and irreversible; it exists for maintenance and testing and
// is never part of the query path.
var resetStoreCmd = &cobra.Command{
	Use:   "reset-store",
	Short: "Drop and recreate the knowledge store collection",
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			log.Fatal("reset-store drops all stored knowledge units; re-run with --yes to confirm")
		}

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		store, err := buildStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to knowledge store: %v", err)
		}
		if err := store.Reset(context.Background()); err != nil {
			log.Fatalf("Failed to reset knowledge store: %v", err)
		}
		log.Println("Knowledge store reset.")
	},
}

func init() {
	rootCmd.AddCommand(resetStoreCmd)

	resetStoreCmd.Flags().Bool("yes", false, "Confirm the destructive reset")
}
