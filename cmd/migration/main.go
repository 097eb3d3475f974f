package main

import (
	"context"
	"healthmate-service/internal/app/config"
	"healthmate-service/internal/app/drivers/database"
	"healthmate-service/internal/app/drivers/logger"
	"healthmate-service/internal/app/services/core/profiles"
	"time"

	"go.uber.org/zap"
)

// Creates the unique profile indexes the create-if-absent path relies on.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer func() { _ = log.Sync() }()

	client := database.NewMongoDB(driverConfig)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	defer func() { _ = client.Disconnect(ctx) }()

	repository := profiles.NewProfileMongoRepository(client, driverConfig.MongoDB.DbName)
	err := repository.EnsureIndexes(ctx)
	if err != nil {
		log.Fatal("Failed to ensure profile indexes", zap.Error(err))
	}

	log.Info("Profile indexes are in place", zap.String("database", driverConfig.MongoDB.DbName))
}
