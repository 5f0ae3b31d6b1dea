package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/config"
	"github.com/sanchezegido/recipedia/internal/database"
	"github.com/sanchezegido/recipedia/internal/logging"
)

func main() {
	drop := flag.Bool("drop", false, "Drop every table before migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, config.IsProduction())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if *drop {
		models := database.Models()
		// Children first so foreign keys do not block the drop
		for i := len(models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				logger.Fatal("failed to drop table", zap.Error(err))
			}
		}
		logger.Info("dropped tables", zap.Int("count", len(models)))
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("schema is up to date", zap.String("driver", cfg.DBDriver))
}
