package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/wms-stock-engine/docs"
	"github.com/jhoicas/wms-stock-engine/internal/application/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
	"github.com/jhoicas/wms-stock-engine/internal/infrastructure/memory"
	"github.com/jhoicas/wms-stock-engine/internal/infrastructure/messaging"
	"github.com/jhoicas/wms-stock-engine/internal/infrastructure/observability"
	"github.com/jhoicas/wms-stock-engine/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/wms-stock-engine/internal/interfaces/http"
	"github.com/jhoicas/wms-stock-engine/pkg/config"
	"github.com/jhoicas/wms-stock-engine/pkg/logger"
)

const version = "0.1.0"

// stores repositorios y runner del driver elegido.
type stores struct {
	txRunner   inventory.TxRunner
	stockRepo  repository.StockRepository
	movRepo    repository.StockMovementRepository
	taskRepo   repository.PickTaskRepository
	locations  repository.LocationRepository
	replConfig repository.ReplenishmentConfigRepository
	close      func()
}

// @title                       WMS Stock Engine API
// @version                     0.1.0
// @description                 Motor de kardex, asignación y reposición de stock por ubicación.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Str("strategy", cfg.Engine.Strategy).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Tracing, version)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	var publisher inventory.EventPublisher = inventory.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		kp := messaging.NewKafkaPublisher(messaging.NewKafkaWriter(cfg.Kafka))
		defer func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar publicador Kafka")
			}
		}()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("eventos hacia Kafka")
	}

	strategy, err := inventory.StrategyByName(cfg.Engine.Strategy, cfg.Engine.CandidatePageSize)
	if err != nil {
		log.Fatal().Err(err).Msg("estrategia de asignación")
	}
	retry := inventory.RetryPolicy{MaxAttempts: cfg.Engine.RetryAttempts, Backoff: cfg.Engine.RetryBackoff}

	registerMovementUC := inventory.NewRegisterMovementUseCase(st.txRunner, st.locations, publisher, retry, log)
	allocateUC := inventory.NewAllocateUseCase(st.txRunner, st.stockRepo, strategy, publisher, retry, log)
	confirmPickUC := inventory.NewConfirmPickUseCase(st.txRunner, st.locations, publisher, retry, log)
	replenishmentUC := inventory.NewReplenishmentUseCase(
		st.txRunner, st.replConfig, st.stockRepo, st.taskRepo, strategy, publisher, retry, log,
	)
	queryUC := inventory.NewStockQueryUseCase(st.stockRepo, st.movRepo, st.taskRepo)

	scheduler := inventory.NewReplenishmentScheduler(replenishmentUC, cfg.Engine.ReplenishmentInterval, log)
	if cfg.Engine.ReplenishmentEnabled {
		scheduler.Start(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "WMS Stock Engine API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerMovementUC,
		Allocate:         allocateUC,
		ConfirmPick:      confirmPickUC,
		Replenishment:    replenishmentUC,
		Queries:          queryUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		store := memory.NewStore()
		if cfg.App.SeedFile != "" {
			if err := store.LoadSeedFile(cfg.App.SeedFile); err != nil {
				return nil, err
			}
		}
		return &stores{
			txRunner:   memory.NewTxRunner(store),
			stockRepo:  store.StockRepository(),
			movRepo:    store.MovementRepository(),
			taskRepo:   store.TaskRepository(),
			locations:  store.LocationRepository(),
			replConfig: store.ReplenishmentConfigRepository(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		txRunner:   postgres.NewTxRunner(pool),
		stockRepo:  postgres.NewStockRepository(pool),
		movRepo:    postgres.NewStockMovementRepository(pool),
		taskRepo:   postgres.NewPickTaskRepository(pool),
		locations:  postgres.NewLocationRepository(pool),
		replConfig: postgres.NewReplenishmentConfigRepository(pool),
		close:      pool.Close,
	}, nil
}
