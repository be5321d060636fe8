package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
	"github.com/jhoicas/wms-stock-engine/pkg/logger"
)

// ConfirmPickUseCase confirma tareas de picking y de reposición: libera la reserva, saca el stock
// del origen y lo ingresa en el destino, todo en una única transacción.
type ConfirmPickUseCase struct {
	txRunner     TxRunner
	locationRepo repository.LocationRepository
	publisher    EventPublisher
	retry        RetryPolicy
	log          *logger.Logger
}

// NewConfirmPickUseCase construye el caso de uso.
func NewConfirmPickUseCase(
	txRunner TxRunner,
	locationRepo repository.LocationRepository,
	publisher EventPublisher,
	retry RetryPolicy,
	log *logger.Logger,
) *ConfirmPickUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ConfirmPickUseCase{
		txRunner:     txRunner,
		locationRepo: locationRepo,
		publisher:    publisher,
		retry:        retry,
		log:          log,
	}
}

// PickConfirmation resultado de la confirmación.
// FullUnitMove indica que el contenedor viajó al destino junto con la mercancía.
type PickConfirmation struct {
	Task             *entity.PickTask
	AlreadyCompleted bool
	FullUnitMove     bool
	Outbound         *MovementResult
	Inbound          *MovementResult
}

// ConfirmPick confirma la tarea moviendo QuantityPlanned del origen a destinationLocationID.
// Para tareas de reposición un destino vacío toma el destino propio de la tarea.
// Confirmar una tarea ya completada no mueve stock y devuelve AlreadyCompleted=true.
//
// Movimiento de unidad completa: la tarea tiene contenedor y, al momento de confirmar, el físico
// del saldo de origen es exactamente la cantidad planeada; solo entonces el destino recibe el
// contenedor. En otro caso el destino recibe la cantidad sin contenedor y el registro del
// contenedor en el origen queda como está.
func (uc *ConfirmPickUseCase) ConfirmPick(ctx context.Context, taskID, destinationLocationID, userID string) (res *PickConfirmation, err error) {
	if taskID == "" {
		return nil, domain.ErrInvalidInput
	}
	ctx, span := startSpan(ctx, "inventory.ConfirmPick", attribute.String("task.id", taskID))
	defer func() { endSpan(span, err) }()

	err = uc.retry.Do(ctx, func(int) error {
		res = nil
		return uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			stockRepo repository.StockRepository,
			taskRepo repository.PickTaskRepository,
		) error {
			var txErr error
			res, txErr = uc.confirmInTx(ctx, movRepo, stockRepo, taskRepo, taskID, destinationLocationID, userID)
			return txErr
		})
	})
	if err != nil {
		return nil, err
	}
	if res.AlreadyCompleted {
		uc.log.Debug().Str("task_id", taskID).Msg("tarea ya completada, sin cambios")
		return res, nil
	}

	uc.log.Info().
		Str("task_id", taskID).
		Str("kind", res.Task.Kind).
		Str("product_id", res.Task.ProductID).
		Str("from", res.Task.SourceLocationID).
		Str("to", res.Inbound.Movement.LocationID).
		Bool("full_unit", res.FullUnitMove).
		Msg("tarea confirmada")
	publish(ctx, uc.publisher, uc.log,
		movementEvent(res.Outbound.Movement),
		movementEvent(res.Inbound.Movement),
		taskEvent(EventTaskCompleted, res.Task, *res.Task.CompletedAt),
	)
	return res, nil
}

func (uc *ConfirmPickUseCase) confirmInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	taskRepo repository.PickTaskRepository,
	taskID, destinationLocationID, userID string,
) (*PickConfirmation, error) {
	task, err := taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.Completed {
		return &PickConfirmation{Task: task, AlreadyCompleted: true}, nil
	}

	dest := destinationLocationID
	if dest == "" && task.Kind == entity.TaskKindReplenishment {
		dest = task.DestinationLocationID
	}
	if dest == "" {
		return nil, fmt.Errorf("%w: ubicación destino requerida", domain.ErrInvalidInput)
	}
	if err := checkLocation(ctx, uc.locationRepo, task.SourceLocationID); err != nil {
		return nil, err
	}
	if err := checkLocation(ctx, uc.locationRepo, dest); err != nil {
		return nil, err
	}

	src, err := stockRepo.FindByKey(ctx, task.SourceKey())
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: saldo de origen de la tarea %s", domain.ErrNotFound, task.ID)
	}
	if src.QuantityReserved.LessThan(task.QuantityPlanned) {
		return nil, fmt.Errorf("%w: reservado %s, planeado %s",
			domain.ErrInsufficientStock, src.QuantityReserved, task.QuantityPlanned)
	}

	now := time.Now()
	fullUnit := task.ContainerID != "" && src.QuantityOnHand.Equal(task.QuantityPlanned)
	qualityStatus, expiresAt, receivedAt := src.QualityStatus, src.ExpiresAt, src.ReceivedAt

	// Liberar la reserva antes de la salida: la salida exige disponible suficiente.
	src.QuantityReserved = src.QuantityReserved.Sub(task.QuantityPlanned)
	src.UpdatedAt = now
	if err := stockRepo.Update(ctx, src); err != nil {
		return nil, err
	}

	txID := uuid.New().String()
	reference := "task:" + task.ID
	out, err := applyInTx(ctx, movRepo, stockRepo, MovementInput{
		ProductID:     task.ProductID,
		LocationID:    task.SourceLocationID,
		Lot:           task.Lot,
		Serial:        task.Serial,
		ContainerID:   task.ContainerID,
		QualityStatus: qualityStatus,
		Type:          entity.MovementTypeOUT,
		Quantity:      task.QuantityPlanned,
		UserID:        userID,
		Reference:     reference,
		TransactionID: txID,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("salida en origen: %w", err)
	}

	destContainer := ""
	if fullUnit {
		destContainer = task.ContainerID
	}
	in, err := applyInTx(ctx, movRepo, stockRepo, MovementInput{
		ProductID:     task.ProductID,
		LocationID:    dest,
		Lot:           task.Lot,
		Serial:        task.Serial,
		ContainerID:   destContainer,
		QualityStatus: qualityStatus,
		Type:          entity.MovementTypeIN,
		Quantity:      task.QuantityPlanned,
		ExpiresAt:     expiresAt,
		ReceivedAt:    &receivedAt,
		UserID:        userID,
		Reference:     reference,
		TransactionID: txID,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("entrada en destino: %w", err)
	}

	task.Completed = true
	task.CompletedAt = &now
	task.CompletedBy = userID
	if task.Kind == entity.TaskKindPick {
		task.DestinationLocationID = dest
	}
	if err := taskRepo.MarkCompleted(ctx, task); err != nil {
		return nil, err
	}
	return &PickConfirmation{Task: task, FullUnitMove: fullUnit, Outbound: out, Inbound: in}, nil
}
