package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
	"github.com/jhoicas/wms-stock-engine/pkg/logger"
)

// AllocateUseCase reserva stock contra la demanda de una línea de pedido y genera tareas de picking.
// No toma bloqueos globales: cada saldo se reserva con su propia verificación de versión, por lo que
// la asignación completa no es atómica; la demanda restante siempre se recalcula desde los acumulados.
type AllocateUseCase struct {
	txRunner  TxRunner
	source    CandidateSource
	strategy  Strategy
	publisher EventPublisher
	retry     RetryPolicy
	log       *logger.Logger
}

// NewAllocateUseCase construye el caso de uso con la estrategia elegida por configuración.
func NewAllocateUseCase(
	txRunner TxRunner,
	source CandidateSource,
	strategy Strategy,
	publisher EventPublisher,
	retry RetryPolicy,
	log *logger.Logger,
) *AllocateUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AllocateUseCase{
		txRunner:  txRunner,
		source:    source,
		strategy:  strategy,
		publisher: publisher,
		retry:     retry,
		log:       log,
	}
}

// AllocationResult tareas generadas y demanda restante. Partial indica que se agotaron los
// candidatos antes de cubrir la demanda (no es un error; el llamador decide el backorder).
type AllocationResult struct {
	DemandID  string
	Strategy  string
	Tasks     []*entity.PickTask
	Reserved  decimal.Decimal
	Remaining decimal.Decimal
	Partial   bool
}

// Strategy nombre de la estrategia con la que asigna este caso de uso.
func (uc *AllocateUseCase) Strategy() string { return uc.strategy.Name() }

// Allocate recorre los candidatos de la estrategia y reserva hasta cubrir la demanda.
// Incrementa demand.QuantityReserved a medida que reserva. Ante un error devuelve también el
// resultado parcial: las reservas ya confirmadas permanecen y la demanda restante es reanudable.
func (uc *AllocateUseCase) Allocate(ctx context.Context, demand *entity.AllocationDemand, userID string) (res *AllocationResult, err error) {
	if demand == nil || demand.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !demand.QuantityNeeded.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	ctx, span := startSpan(ctx, "inventory.Allocate",
		attribute.String("product.id", demand.ProductID),
		attribute.String("demand.id", demand.ID),
		attribute.String("strategy", uc.strategy.Name()),
	)
	defer func() { endSpan(span, err) }()

	res = &AllocationResult{DemandID: demand.ID, Strategy: uc.strategy.Name(), Reserved: decimal.Zero}
	defer func() { res.Remaining = demand.Remaining() }()

	build := func(_ context.Context, _ repository.PickTaskRepository, b *entity.StockBalance, qty decimal.Decimal, now time.Time) (*entity.PickTask, error) {
		return &entity.PickTask{
			ID:               uuid.New().String(),
			Kind:             entity.TaskKindPick,
			DemandID:         demand.ID,
			ProductID:        b.ProductID,
			BalanceID:        b.ID,
			SourceLocationID: b.LocationID,
			Lot:              b.Lot,
			Serial:           b.Serial,
			ContainerID:      b.ContainerID,
			QuantityPlanned:  qty,
			CreatedBy:        userID,
			CreatedAt:        now,
		}, nil
	}

	q := repository.CandidateQuery{ProductID: demand.ProductID}
	for cand, iterErr := range uc.strategy.Candidates(ctx, uc.source, q) {
		if iterErr != nil {
			return res, fmt.Errorf("listar candidatos: %w", iterErr)
		}
		remaining := demand.Remaining()
		if !remaining.IsPositive() {
			break
		}
		if !cand.Available().IsPositive() {
			continue
		}
		task, err := reserveBalance(ctx, uc.txRunner, uc.retry, cand, remaining, build)
		if err != nil {
			return res, fmt.Errorf("reservar saldo %s: %w", cand.ID, err)
		}
		if task == nil {
			continue
		}
		demand.QuantityReserved = demand.QuantityReserved.Add(task.QuantityPlanned)
		res.Reserved = res.Reserved.Add(task.QuantityPlanned)
		res.Tasks = append(res.Tasks, task)
		publish(ctx, uc.publisher, uc.log, taskEvent(EventTaskCreated, task, task.CreatedAt))
	}

	res.Partial = demand.Remaining().IsPositive()
	if res.Partial {
		uc.log.Info().
			Str("demand_id", demand.ID).
			Str("product_id", demand.ProductID).
			Str("remaining", demand.Remaining().String()).
			Msg("asignación parcial: candidatos agotados")
	}
	return res, nil
}
