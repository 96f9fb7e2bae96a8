package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/api/http"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/api/http/handlers"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/auth"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/config"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/events"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/observability"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/persistence"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/repository"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/service"
	"github.com/pedrop-nortek/gestao-de-suporte-nortekbr-sub000/internal/worker"
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

	profileCache := persistence.NewProfileCache(redis, cfg.Redis.ProfileTTL())
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	profileRepo := repository.NewProfileRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	equipmentRepo := repository.NewEquipmentRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	messageRepo := repository.NewTicketMessageRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	rmaRepo := repository.NewRmaRepository(pool)
	recycleRepo := repository.NewRecycleRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		ProfileRepo:  profileRepo,
		ProfileCache: profileCache,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:    ticketRepo,
		ProfileRepo:   profileRepo,
		CompanyRepo:   companyRepo,
		EquipmentRepo: equipmentRepo,
		Dispatcher:    dispatcher,
	})
	activityService := service.NewActivityService(service.ActivityDependencies{
		TicketRepo:     ticketRepo,
		MessageRepo:    messageRepo,
		AttachmentRepo: attachmentRepo,
		Dispatcher:     dispatcher,
	})
	rmaService := service.NewRmaService(service.RmaDependencies{
		RmaRepo:    rmaRepo,
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		CompanyRepo:   companyRepo,
		ContactRepo:   contactRepo,
		EquipmentRepo: equipmentRepo,
	})
	recycleService := service.NewRecycleService(recycleRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), profileRepo, profileCache)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, activityService),
		Rma:            handlers.NewRmaHandler(rmaService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Trash:          handlers.NewTrashHandler(recycleService),
		AuthMiddleware: authMiddleware,
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
