package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/whotakesshowers/wts/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the outcome log on this device",
	Long:  "Clear the outcome log on this device. History kept by the server is not touched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		n, err := s.OutcomeRepo().Clear(cmd.Context())
		if err != nil {
			return fmt.Errorf("clear outcomes: %w", err)
		}
		fmt.Printf("Removed %d outcome(s) from %s\n", n, dbPath)
		return nil
	},
}
