package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
	"github.com/jhoicas/wms-stock-engine/pkg/logger"
)

// errPendingReplenishment aborta la tx cuando otro escaneo ya generó la reposición.
var errPendingReplenishment = errors.New("reposición pendiente existente")

// ReplenishmentUseCase revisa las ubicaciones de picking configuradas y genera tareas de reposición
// desde el resto del almacén cuando el físico cae al punto de reorden o por debajo.
type ReplenishmentUseCase struct {
	txRunner   TxRunner
	configRepo repository.ReplenishmentConfigRepository
	stockRepo  repository.StockRepository
	taskRepo   repository.PickTaskRepository
	strategy   Strategy
	publisher  EventPublisher
	retry      RetryPolicy
	log        *logger.Logger

	// un escaneo a la vez (ticker y disparo manual)
	scanMu sync.Mutex
}

// NewReplenishmentUseCase construye el caso de uso. stockRepo y taskRepo son los repositorios
// atados al pool (lecturas fuera de transacción).
func NewReplenishmentUseCase(
	txRunner TxRunner,
	configRepo repository.ReplenishmentConfigRepository,
	stockRepo repository.StockRepository,
	taskRepo repository.PickTaskRepository,
	strategy Strategy,
	publisher EventPublisher,
	retry RetryPolicy,
	log *logger.Logger,
) *ReplenishmentUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReplenishmentUseCase{
		txRunner:   txRunner,
		configRepo: configRepo,
		stockRepo:  stockRepo,
		taskRepo:   taskRepo,
		strategy:   strategy,
		publisher:  publisher,
		retry:      retry,
		log:        log,
	}
}

// ScanReport resumen de un ciclo de reposición.
type ScanReport struct {
	Scanned   int
	Generated int
	Skipped   int
	Failed    int
	Tasks     []*entity.PickTask
}

// RunOnce ejecuta un ciclo completo sobre las configuraciones activas.
// El error de una configuración se registra y no detiene las demás; solo falla si no se pudo
// leer la configuración.
func (uc *ReplenishmentUseCase) RunOnce(ctx context.Context) (report *ScanReport, err error) {
	uc.scanMu.Lock()
	defer uc.scanMu.Unlock()

	ctx, span := startSpan(ctx, "inventory.ReplenishmentScan")
	defer func() { endSpan(span, err) }()

	configs, err := uc.configRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar configuración de reposición: %w", err)
	}

	report = &ScanReport{}
	for _, cfg := range configs {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.Scanned++
		task, err := uc.processConfig(ctx, cfg)
		switch {
		case err != nil:
			report.Failed++
			uc.log.Error().Err(err).
				Str("config_id", cfg.ID).
				Str("product_id", cfg.ProductID).
				Str("location_id", cfg.LocationID).
				Msg("reposición: error procesando configuración")
		case task == nil:
			report.Skipped++
		default:
			report.Generated++
			report.Tasks = append(report.Tasks, task)
			publish(ctx, uc.publisher, uc.log, taskEvent(EventTaskCreated, task, task.CreatedAt))
		}
	}

	uc.log.Info().
		Int("scanned", report.Scanned).
		Int("generated", report.Generated).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("ciclo de reposición completado")
	return report, nil
}

// processConfig devuelve la tarea generada, o nil si la configuración no requiere reposición.
func (uc *ReplenishmentUseCase) processConfig(ctx context.Context, cfg *entity.ReplenishmentConfig) (*entity.PickTask, error) {
	pending, err := uc.taskRepo.HasPendingReplenishment(ctx, cfg.ProductID, cfg.LocationID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, nil
	}

	onHand, err := uc.stockRepo.SumOnHandAt(ctx, cfg.ProductID, cfg.LocationID)
	if err != nil {
		return nil, err
	}
	if onHand.GreaterThan(cfg.ReorderPoint) {
		return nil, nil
	}
	needed := cfg.MaxCapacity.Sub(onHand)
	if !needed.IsPositive() {
		return nil, nil
	}

	build := func(ctx context.Context, taskRepo repository.PickTaskRepository, b *entity.StockBalance, qty decimal.Decimal, now time.Time) (*entity.PickTask, error) {
		pending, err := taskRepo.HasPendingReplenishment(ctx, cfg.ProductID, cfg.LocationID)
		if err != nil {
			return nil, err
		}
		if pending {
			return nil, errPendingReplenishment
		}
		return &entity.PickTask{
			ID:                    uuid.New().String(),
			Kind:                  entity.TaskKindReplenishment,
			DemandID:              cfg.ID,
			ProductID:             b.ProductID,
			BalanceID:             b.ID,
			SourceLocationID:      b.LocationID,
			DestinationLocationID: cfg.LocationID,
			Lot:                   b.Lot,
			Serial:                b.Serial,
			ContainerID:           b.ContainerID,
			QuantityPlanned:       qty,
			CreatedBy:             "system",
			CreatedAt:             now,
		}, nil
	}

	// Un solo origen por ciclo: el mejor candidato que siga disponible al reservar.
	q := repository.CandidateQuery{ProductID: cfg.ProductID, ExcludeLocationID: cfg.LocationID}
	for cand, iterErr := range uc.strategy.Candidates(ctx, uc.stockRepo, q) {
		if iterErr != nil {
			return nil, iterErr
		}
		task, err := reserveBalance(ctx, uc.txRunner, uc.retry, cand, needed, build)
		if errors.Is(err, errPendingReplenishment) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if task != nil {
			return task, nil
		}
	}

	uc.log.Warn().
		Str("product_id", cfg.ProductID).
		Str("location_id", cfg.LocationID).
		Str("needed", needed.String()).
		Msg("reposición: sin stock de origen disponible")
	return nil, nil
}

// ReplenishmentScheduler ejecuta RunOnce periódicamente.
type ReplenishmentScheduler struct {
	uc       *ReplenishmentUseCase
	interval time.Duration
	log      *logger.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// DefaultReplenishmentInterval intervalo por defecto entre ciclos.
const DefaultReplenishmentInterval = 10 * time.Minute

// NewReplenishmentScheduler crea el planificador; interval <= 0 usa DefaultReplenishmentInterval.
func NewReplenishmentScheduler(uc *ReplenishmentUseCase, interval time.Duration, log *logger.Logger) *ReplenishmentScheduler {
	if interval <= 0 {
		interval = DefaultReplenishmentInterval
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReplenishmentScheduler{uc: uc, interval: interval, log: log}
}

// Start lanza el ciclo en segundo plano. Llamarlo con el planificador ya iniciado no hace nada.
// El ciclo termina con Stop o al cancelarse ctx.
func (s *ReplenishmentScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.interval)
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.run(ctx, s.ticker, s.stop)

	s.log.Info().Dur("interval", s.interval).Msg("planificador de reposición iniciado")
}

// Stop detiene el ciclo y espera a que termine el escaneo en curso.
func (s *ReplenishmentScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
	s.ticker = nil
	s.log.Info().Msg("planificador de reposición detenido")
}

func (s *ReplenishmentScheduler) run(ctx context.Context, ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()
	for {
		select {
		case <-ticker.C:
			if _, err := s.uc.RunOnce(ctx); err != nil {
				s.log.Error().Err(err).Msg("ciclo de reposición fallido")
			}
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}
