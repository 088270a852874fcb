package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/caloriesapp/backend/internal/config"
	"github.com/caloriesapp/backend/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the database schema up to date and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if _, err := db.Open(cfg.DBDriver, cfg.DBDSN); err != nil {
			return err
		}
		log.Println("schema is up to date")
		return nil
	},
}
