package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"boxoffice/api/routes"
	"boxoffice/internal/notifications"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/database"
	"boxoffice/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	appLogger := logger.New()
	logger.SetDefault(appLogger)

	appLogger.Info("Starting box office database seeder")

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	appRouter := routes.NewRouter(cfg, db, notifications.NewNoopPublisher(), clockwork.NewRealClock())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := appRouter.Seeder().SeedAll(ctx); err != nil {
		appLogger.Error("Failed to seed database", slog.Any("error", err))
		os.Exit(1)
	}

	appLogger.Info("Seeding completed, database is ready for testing")
}
