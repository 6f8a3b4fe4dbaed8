package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/list-manager/internal/api/http"
	"github.com/spec-kit/list-manager/internal/api/http/handlers"
	"github.com/spec-kit/list-manager/internal/auth"
	"github.com/spec-kit/list-manager/internal/config"
	"github.com/spec-kit/list-manager/internal/events"
	"github.com/spec-kit/list-manager/internal/graph"
	"github.com/spec-kit/list-manager/internal/observability"
	"github.com/spec-kit/list-manager/internal/persistence"
	"github.com/spec-kit/list-manager/internal/repository"
	"github.com/spec-kit/list-manager/internal/service"
	"github.com/spec-kit/list-manager/internal/worker"
)

const (
	auditQueueSize  = 256
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if pg.Pool == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongo", zap.Error(err))
	}
	defer mongo.Close(context.Background())

	metrics := observability.NewMetrics("list_manager")
	dispatcher := events.NewInMemoryDispatcher(logger)

	var auditStore repository.AuditRepository
	if mongo.Enabled() {
		if err := repository.EnsureAuditIndexes(ctx, mongo.Database); err != nil {
			logger.Warn("failed to ensure audit indexes", zap.Error(err))
		}
		auditStore = repository.NewAuditRepository(mongo.Database)
	}
	auditWorker := worker.NewAuditWorker(service.NewAuditService(auditStore, logger), auditQueueSize, logger)
	auditWorker.Register(dispatcher)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go auditWorker.Run(workerCtx)

	userRepo := repository.NewUserRepository(pg.Pool)
	itemRepo := repository.NewItemRepository(pg.Pool)
	listRepo := repository.NewListRepository(pg.Pool)
	entryRepo := repository.NewListItemRepository(pg.Pool)

	var throttle auth.LoginThrottle = auth.NoopLoginThrottle{}
	if redis.Enabled() {
		throttle = auth.NewRedisLoginThrottle(redis.Client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow, logger)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	userService := service.NewUserService(userRepo, dispatcher, cfg.Auth.BcryptCost, logger)
	authService, err := service.NewAuthService(service.AuthDependencies{
		Users:      userService,
		Tokens:     tokens,
		Throttle:   throttle,
		Dispatcher: dispatcher,
		Logger:     logger,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	itemService := service.NewItemService(itemRepo)
	listService := service.NewListService(listRepo)
	entryService := service.NewListItemService(entryRepo, listRepo, itemRepo)

	resolver := graph.NewResolver(graph.Dependencies{
		Auth:      authService,
		Users:     userService,
		Items:     itemService,
		Lists:     listService,
		ListItems: entryService,
	})
	authMiddleware := auth.NewAuthMiddleware(auth.NewIdentityResolver(tokens, userService), metrics, logger)

	readiness := map[string]handlers.Pinger{"postgres": pg}
	if redis.Enabled() {
		readiness["redis"] = redis
	}
	if mongo.Enabled() {
		readiness["mongo"] = mongo
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout,
		WriteTimeout: cfg.App.RequestTimeout,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout)

	validator := handlers.NewRequestValidator()
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, readiness),
		Auth:           handlers.NewAuthHandler(resolver, validator),
		Users:          handlers.NewUsersHandler(resolver, validator),
		Items:          handlers.NewItemsHandler(resolver, validator),
		Lists:          handlers.NewListsHandler(resolver, validator),
		ListItems:      handlers.NewListItemsHandler(resolver, validator),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Error("fiber listen", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	stopWorker()
	auditWorker.Wait()
}
