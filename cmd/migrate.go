package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-ParkingService/migrations"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Close()

	db, err := openDB(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	runner := migrations.NewRunner(wrapped, txmanager.NewTransactionManager(wrapped), log)

	applied, err := runner.Apply(context.Background())
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	if len(applied) == 0 {
		log.Info("Database schema is up to date")
		return nil
	}
	log.Info("Applied %d migration(s)", len(applied))
	return nil
}
