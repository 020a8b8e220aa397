package main

import (
	"fmt"

	"github.com/jonathan/mock-interview/internal/session"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved interview session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := session.OpenStore(cfg.StateBackend, cfg.StatePath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved session cleared.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
