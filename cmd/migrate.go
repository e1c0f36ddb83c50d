package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/hrconsole/internal/storage"
	"github.com/frahmantamala/hrconsole/internal/storage/migrations"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run the embedded sql migrations against the configured database",
	}
	migrateRollback bool
	migrateStatus   bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.Flags().BoolVarP(&migrateStatus, "status", "s", false, "to print the current schema version only")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	initLogger(cfg)

	dbCfg := cfg.Database
	dbCfg.AutoMigrate = false
	db, err := storage.OpenDB(ctx, dbCfg)
	if err != nil {
		log.Fatalf("migrate: failed to open DB: %v\n", err)
	}
	defer db.Close()

	dialect := dbCfg.GooseDialect()
	switch {
	case migrateStatus:
	case migrateRollback:
		if err := migrations.Down(ctx, db.DB, dialect); err != nil {
			log.Fatalf("goose down: %v", err)
		}
	default:
		if err := migrations.Up(ctx, db.DB, dialect); err != nil {
			log.Fatalf("goose up: %v", err)
		}
	}

	version, err := migrations.Version(ctx, db.DB, dialect)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	fmt.Println("schema version:", version)
	return nil
}
