package main

import (
	"context"
	"errors"
	"healthmate-service/internal/app/config"
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/delivery/http/controllers"
	"healthmate-service/internal/app/delivery/http/middlewares"
	"healthmate-service/internal/app/delivery/http/routers"
	"healthmate-service/internal/app/drivers/database"
	"healthmate-service/internal/app/drivers/logger"
	"healthmate-service/internal/app/drivers/messaging"
	"healthmate-service/internal/app/services/core/access"
	"healthmate-service/internal/app/services/core/identity"
	"healthmate-service/internal/app/services/core/ownership"
	"healthmate-service/internal/app/services/core/profiles"
	"healthmate-service/internal/app/services/core/resources"
	"healthmate-service/internal/app/services/shared/integrity"
	"healthmate-service/internal/app/services/shared/redis"
	"healthmate-service/internal/pkg/constvars"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig),
	}
	if internalConfig.App.ProfileStore == constvars.ProfileStoreMongo {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
	}
	if internalConfig.Resolver.CacheEnabled {
		bootstrap.Redis = database.NewRedisClient(driverConfig)
	}

	err := bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              ":" + internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("addr", server.Addr), zap.String("build", Version))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Failed to release resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	log := bootstrap.Logger
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	healthChecks := make(map[string]controllers.HealthCheck)

	// Profiles and resource snapshots
	var profileRepository contracts.ProfileRepository
	var snapshotRepository contracts.ResourceSnapshotRepository
	if bootstrap.MongoDB != nil {
		profileRepository = profiles.NewProfileMongoRepository(bootstrap.MongoDB, dbName)
		snapshotRepository = resources.NewResourceSnapshotMongoRepository(bootstrap.MongoDB, dbName)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := profileRepository.EnsureIndexes(ctx)
		if err != nil {
			return err
		}

		client := bootstrap.MongoDB
		healthChecks["mongodb"] = func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}
	} else {
		// Memory mode keeps profiles only. No resource snapshots are loaded, so
		// checks by resourceId answer 404 and only create checks can be granted.
		log.Warn("Using in-memory profile store, data will not survive a restart and stored resource checks answer 404")
		profileRepository = profiles.NewProfileMemoryRepository()
		snapshotRepository = resources.NewResourceSnapshotMemoryRepository()
	}

	// Directory, optionally cached in redis
	var directory contracts.ProfileDirectory = profileRepository
	var directoryCache contracts.ProfileDirectoryCache
	if bootstrap.Redis != nil {
		redisRepository := redis.NewRedisRepository(bootstrap.Redis)
		ttl := time.Duration(bootstrap.InternalConfig.Resolver.CacheTTLInSeconds) * time.Second
		cachedDirectory := profiles.NewCachedProfileDirectory(profileRepository, redisRepository, ttl, log)
		directory = cachedDirectory
		directoryCache = cachedDirectory
		healthChecks["redis"] = redisRepository.Ping
	}

	// Integrity events
	var publisher integrity.Publisher
	if bootstrap.RabbitMQ != nil {
		channel, err := integrity.NewIntegrityQueuePublisher(bootstrap.RabbitMQ, bootstrap.InternalConfig.RabbitMQ.IntegrityQueue)
		if err != nil {
			return err
		}
		publisher = channel
	}
	integrityReporter := integrity.NewIntegrityReporter(publisher, bootstrap.InternalConfig.RabbitMQ.IntegrityQueue, log)

	// Authorization core
	policyEngine := access.NewPolicyEngine()
	identityResolver := identity.NewIdentityResolver(directory, log)
	ownershipIndex := ownership.NewOwnershipIndex()
	accessUsecase := access.NewAccessUsecase(identityResolver, ownershipIndex, policyEngine, snapshotRepository, integrityReporter, log)
	profileUsecase := profiles.NewProfileUsecase(profileRepository, directoryCache, policyEngine, log)

	// Delivery
	middlewares := middlewares.NewMiddlewares(log, bootstrap.InternalConfig)
	healthController := controllers.NewHealthController(log, bootstrap.InternalConfig.App.Version, healthChecks)
	profileController := controllers.NewProfileController(log, profileUsecase)
	accessController := controllers.NewAccessController(log, accessUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, healthController, profileController, accessController)
	return nil
}
