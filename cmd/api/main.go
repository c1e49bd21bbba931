package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/couriersync/courier-backoffice/internal/api/http"
	"github.com/couriersync/courier-backoffice/internal/api/http/handlers"
	"github.com/couriersync/courier-backoffice/internal/auth"
	"github.com/couriersync/courier-backoffice/internal/config"
	"github.com/couriersync/courier-backoffice/internal/events"
	"github.com/couriersync/courier-backoffice/internal/observability"
	"github.com/couriersync/courier-backoffice/internal/persistence"
	"github.com/couriersync/courier-backoffice/internal/repository"
	"github.com/couriersync/courier-backoffice/internal/service"
	"github.com/couriersync/courier-backoffice/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	routeRepo := repository.NewRouteRepository(pool)
	statusRepo := repository.NewRouteStatusRepository(pool)
	trafficRepo := repository.NewTrafficLevelRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	// The directory must be loaded before the gate serves traffic; an
	// unreachable role table at startup is fatal.
	roleDirectory := auth.NewRoleDirectory(roleRepo)
	if err := roleDirectory.Load(ctx); err != nil {
		logger.Fatal("failed to load role directory", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, auditRepo, logger)
	worker.StartAuditWorker(auditService)

	tokenService := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLHours)
	mfaService := service.NewMFAService(redis.Client, userRepo, tokenService, dispatcher, cfg.MFA, logger)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokenService,
		MFA:        mfaService,
		Dispatcher: dispatcher,
	})
	routeService := service.NewRouteService(routeRepo, statusRepo, trafficRepo, dispatcher)

	gate := auth.NewGate(httptransport.NewRuleTable(), tokenService, roleDirectory)

	metrics := observability.NewMetrics()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:   handlers.NewAuthHandler(authService),
		MFA:    handlers.NewMFAHandler(mfaService),
		Routes: handlers.NewRoutesHandler(routeService),
		Roles:  handlers.NewRolesHandler(roleDirectory),
		Audit:  handlers.NewAuditHandler(auditService),
		Gate:   gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
