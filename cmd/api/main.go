package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ada-support/helpdesk/internal/api/http"
	"github.com/ada-support/helpdesk/internal/api/http/handlers"
	"github.com/ada-support/helpdesk/internal/auth"
	"github.com/ada-support/helpdesk/internal/config"
	"github.com/ada-support/helpdesk/internal/events"
	"github.com/ada-support/helpdesk/internal/mail"
	"github.com/ada-support/helpdesk/internal/observability"
	"github.com/ada-support/helpdesk/internal/persistence"
	"github.com/ada-support/helpdesk/internal/repository"
	"github.com/ada-support/helpdesk/internal/service"
	"github.com/ada-support/helpdesk/internal/storage"
	"github.com/ada-support/helpdesk/internal/worker"
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
	ticketRepo := repository.NewTicketRepository(pool)
	otpRepo := repository.NewOTPRepository(redis.Client)

	mailer := mail.NewSMTPSender(cfg.Mail)

	var uploader storage.Uploader
	if cfg.Storage.Endpoint != "" {
		store, err := storage.NewObjectStore(cfg.Storage)
		if err != nil {
			logger.Fatal("failed to init object storage", zap.Error(err))
		}
		uploader = store
	} else {
		logger.Warn("object storage not configured, ticket image uploads disabled")
	}

	dispatcher := events.NewInMemoryDispatcher()

	otpService := service.NewOTPService(service.OTPDependencies{
		UserRepo: userRepo,
		OTPRepo:  otpRepo,
		Mailer:   mailer,
	}, cfg.OTP.TTL(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: userRepo,
		OTP:      otpService,
	})

	userService := service.NewUserService(userRepo)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Uploader:   uploader,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	usersHandler := handlers.NewUsersHandler(authService, otpService, userService)
	ticketsHandler := handlers.NewTicketsHandler(ticketService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  healthHandler,
		Users:   usersHandler,
		Tickets: ticketsHandler,
		Auth:    authMiddleware,
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
