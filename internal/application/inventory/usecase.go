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

// RegisterMovementUseCase es el único punto por el que pasa todo cambio de cantidad física:
// valida, actualiza el saldo (con control de versión) y escribe el kardex en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	locationRepo repository.LocationRepository
	publisher    EventPublisher
	retry        RetryPolicy
	log          *logger.Logger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	locationRepo repository.LocationRepository,
	publisher EventPublisher,
	retry RetryPolicy,
	log *logger.Logger,
) *RegisterMovementUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		locationRepo: locationRepo,
		publisher:    publisher,
		retry:        retry,
		log:          log,
	}
}

// MovementInput entrada del procesador de movimientos.
// QualityStatus vacío equivale a AVAILABLE. Decrease solo aplica a INVENTORY_ADJUSTMENT.
// ExpiresAt y ReceivedAt solo se usan al crear un saldo nuevo.
type MovementInput struct {
	ProductID     string
	LocationID    string
	Lot           string
	Serial        string
	ContainerID   string
	QualityStatus string
	Type          string
	Quantity      decimal.Decimal
	Decrease      bool
	ExpiresAt     *time.Time
	ReceivedAt    *time.Time
	UserID        string
	Reference     string
	TransactionID string

	// counted fija el físico final (conteo cíclico); Quantity y Decrease se derivan del saldo leído.
	counted *decimal.Decimal
}

// Key llave del saldo afectado.
func (in MovementInput) Key() entity.BalanceKey {
	return entity.BalanceKey{
		ProductID:   in.ProductID,
		LocationID:  in.LocationID,
		Lot:         in.Lot,
		Serial:      in.Serial,
		ContainerID: in.ContainerID,
	}
}

// MovementResult físico antes y después, más la entrada de kardex escrita.
type MovementResult struct {
	PreviousOnHand decimal.Decimal
	NewOnHand      decimal.Decimal
	Movement       *entity.StockMovement
}

type direction int

const (
	directionIn direction = iota
	directionOut
	directionStatus
)

func movementDirection(typ string, decrease bool) (direction, bool) {
	switch typ {
	case entity.MovementTypeIN, entity.MovementTypePositiveAdjustment:
		return directionIn, true
	case entity.MovementTypeOUT, entity.MovementTypeNegativeAdjustment, entity.MovementTypeLoss:
		return directionOut, true
	case entity.MovementTypeInventoryAdjustment:
		if decrease {
			return directionOut, true
		}
		return directionIn, true
	case entity.MovementTypeBlock, entity.MovementTypeUnblock:
		return directionStatus, true
	}
	return 0, false
}

// ApplyMovement aplica un movimiento y devuelve el físico anterior y el nuevo.
// Los conflictos de versión se reintentan según la RetryPolicy; al agotarse se devuelve
// un error que envuelve domain.ErrConcurrentModification.
func (uc *RegisterMovementUseCase) ApplyMovement(ctx context.Context, in MovementInput) (res *MovementResult, err error) {
	ctx, span := startSpan(ctx, "inventory.ApplyMovement",
		attribute.String("movement.type", in.Type),
		attribute.String("product.id", in.ProductID),
		attribute.String("location.id", in.LocationID),
	)
	defer func() { endSpan(span, err) }()

	if err := validateMovement(&in); err != nil {
		return nil, err
	}
	if err := checkLocation(ctx, uc.locationRepo, in.LocationID); err != nil {
		return nil, err
	}
	if in.TransactionID == "" {
		in.TransactionID = uuid.New().String()
	}

	err = uc.retry.Do(ctx, func(int) error {
		return uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			stockRepo repository.StockRepository,
			_ repository.PickTaskRepository,
		) error {
			var txErr error
			res, txErr = applyInTx(ctx, movRepo, stockRepo, in, time.Now())
			return txErr
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("type", in.Type).
		Str("product_id", in.ProductID).
		Str("location_id", in.LocationID).
		Str("before", res.PreviousOnHand.String()).
		Str("after", res.NewOnHand.String()).
		Msg("movimiento aplicado")
	publish(ctx, uc.publisher, uc.log, movementEvent(res.Movement))
	return res, nil
}

// AdjustToCount concilia un conteo cíclico: registra un INVENTORY_ADJUSTMENT por la diferencia
// entre lo contado y el físico actual. Devuelve nil, nil si no hay diferencia.
// La diferencia se calcula sobre el saldo leído en la misma tx que lo escribe; si otro escritor
// cambia el saldo, el conflicto de versión hace releer y recalcular.
func (uc *RegisterMovementUseCase) AdjustToCount(
	ctx context.Context,
	key entity.BalanceKey,
	counted decimal.Decimal,
	qualityStatus, userID, reference string,
) (res *MovementResult, err error) {
	ctx, span := startSpan(ctx, "inventory.AdjustToCount",
		attribute.String("product.id", key.ProductID),
		attribute.String("location.id", key.LocationID),
	)
	defer func() { endSpan(span, err) }()

	if counted.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	in := MovementInput{
		ProductID:     key.ProductID,
		LocationID:    key.LocationID,
		Lot:           key.Lot,
		Serial:        key.Serial,
		ContainerID:   key.ContainerID,
		QualityStatus: qualityStatus,
		Type:          entity.MovementTypeInventoryAdjustment,
		UserID:        userID,
		Reference:     reference,
		TransactionID: uuid.New().String(),
		counted:       &counted,
	}
	if err := validateTarget(&in); err != nil {
		return nil, err
	}
	if err := checkLocation(ctx, uc.locationRepo, in.LocationID); err != nil {
		return nil, err
	}

	err = uc.retry.Do(ctx, func(int) error {
		res = nil
		return uc.txRunner.Run(ctx, func(
			movRepo repository.StockMovementRepository,
			stockRepo repository.StockRepository,
			_ repository.PickTaskRepository,
		) error {
			var txErr error
			res, txErr = applyInTx(ctx, movRepo, stockRepo, in, time.Now())
			return txErr
		})
	})
	if err != nil || res == nil {
		return nil, err
	}

	uc.log.Debug().
		Str("product_id", in.ProductID).
		Str("location_id", in.LocationID).
		Str("before", res.PreviousOnHand.String()).
		Str("counted", counted.String()).
		Msg("conteo conciliado")
	publish(ctx, uc.publisher, uc.log, movementEvent(res.Movement))
	return res, nil
}

func validateMovement(in *MovementInput) error {
	if err := validateTarget(in); err != nil {
		return err
	}
	if !in.Quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if _, ok := movementDirection(in.Type, in.Decrease); !ok {
		return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
	}
	return nil
}

// validateTarget valida la llave y normaliza el estado de calidad.
func validateTarget(in *MovementInput) error {
	if in.ProductID == "" || in.LocationID == "" {
		return domain.ErrInvalidInput
	}
	if in.QualityStatus == "" {
		in.QualityStatus = entity.QualityAvailable
	}
	if !entity.ValidQualityStatus(in.QualityStatus) {
		return fmt.Errorf("%w: estado de calidad %q", domain.ErrInvalidInput, in.QualityStatus)
	}
	return nil
}

// checkLocation valida que la ubicación exista y acepte movimientos.
func checkLocation(ctx context.Context, repo repository.LocationRepository, locationID string) error {
	loc, err := repo.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, locationID)
	}
	if !loc.Usable() {
		return fmt.Errorf("%w: %s", domain.ErrLocationUnavailable, loc.Code)
	}
	return nil
}

// applyInTx ejecuta el movimiento con los repositorios de una transacción ya abierta.
// La usa también la confirmación de picking para encadenar salida y entrada en la misma tx.
// Con in.counted devuelve nil, nil si el saldo ya tiene la cantidad contada.
func applyInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	in MovementInput,
	now time.Time,
) (*MovementResult, error) {
	key := in.Key()
	bal, err := stockRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if in.counted != nil {
		current := decimal.Zero
		if bal != nil {
			current = bal.QuantityOnHand
		}
		diff := in.counted.Sub(current)
		if diff.IsZero() {
			return nil, nil
		}
		in.Quantity, in.Decrease = diff.Abs(), diff.IsNegative()
	}
	dir, _ := movementDirection(in.Type, in.Decrease)

	// La verificación de serie y la escritura van en la misma tx para que dos entradas
	// concurrentes de la misma serie no pasen ambas.
	if dir == directionIn && in.Serial != "" {
		if err := stockRepo.LockSerial(ctx, in.Serial); err != nil {
			return nil, err
		}
		inStock, err := stockRepo.SerialInStock(ctx, in.Serial)
		if err != nil {
			return nil, err
		}
		if inStock {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateSerial, in.Serial)
		}
	}

	isNew := false
	if bal == nil {
		switch dir {
		case directionOut:
			return nil, fmt.Errorf("%w: sin saldo para %s en %s", domain.ErrInsufficientStock, in.ProductID, in.LocationID)
		case directionStatus:
			return nil, fmt.Errorf("%w: saldo de %s en %s", domain.ErrNotFound, in.ProductID, in.LocationID)
		}
		receivedAt := now
		if in.ReceivedAt != nil {
			receivedAt = *in.ReceivedAt
		}
		bal = &entity.StockBalance{
			ID:               uuid.New().String(),
			ProductID:        key.ProductID,
			LocationID:       key.LocationID,
			Lot:              key.Lot,
			Serial:           key.Serial,
			ContainerID:      key.ContainerID,
			QualityStatus:    in.QualityStatus,
			QuantityOnHand:   decimal.Zero,
			QuantityReserved: decimal.Zero,
			ExpiresAt:        in.ExpiresAt,
			ReceivedAt:       receivedAt,
			CreatedAt:        now,
		}
		isNew = true
	}

	before := bal.QuantityOnHand
	switch dir {
	case directionIn:
		if !isNew && bal.QualityStatus != in.QualityStatus {
			return nil, fmt.Errorf("%w: %s != %s", domain.ErrQualityStatusMismatch, bal.QualityStatus, in.QualityStatus)
		}
		bal.QuantityOnHand = before.Add(in.Quantity)
	case directionOut:
		if before.LessThan(in.Quantity) {
			return nil, fmt.Errorf("%w: físico %s, solicitado %s", domain.ErrInsufficientStock, before, in.Quantity)
		}
		// El físico no puede quedar por debajo de lo reservado.
		if bal.Available().LessThan(in.Quantity) {
			return nil, fmt.Errorf("%w: disponible %s (reservado %s), solicitado %s",
				domain.ErrInsufficientStock, bal.Available(), bal.QuantityReserved, in.Quantity)
		}
		bal.QuantityOnHand = before.Sub(in.Quantity)
	case directionStatus:
		if !in.Quantity.Equal(before) {
			return nil, fmt.Errorf("%w: el bloqueo aplica al saldo completo (%s)", domain.ErrInvalidQuantity, before)
		}
		if in.Type == entity.MovementTypeBlock {
			if bal.QuantityReserved.IsPositive() {
				return nil, fmt.Errorf("%w: el saldo tiene %s reservado", domain.ErrInsufficientStock, bal.QuantityReserved)
			}
			status := in.QualityStatus
			if status == entity.QualityAvailable {
				status = entity.QualityBlocked
			}
			bal.QualityStatus = status
		} else {
			bal.QualityStatus = entity.QualityAvailable
		}
	}
	bal.UpdatedAt = now

	switch {
	case isNew:
		err = stockRepo.Insert(ctx, bal)
	case bal.IsEmpty():
		err = stockRepo.Delete(ctx, bal)
	default:
		err = stockRepo.Update(ctx, bal)
	}
	if err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		TransactionID:  in.TransactionID,
		Type:           in.Type,
		ProductID:      key.ProductID,
		LocationID:     key.LocationID,
		Lot:            key.Lot,
		Serial:         key.Serial,
		ContainerID:    key.ContainerID,
		Quantity:       in.Quantity,
		QuantityBefore: before,
		QuantityAfter:  bal.QuantityOnHand,
		CreatedBy:      in.UserID,
		Reference:      in.Reference,
		CreatedAt:      now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return &MovementResult{PreviousOnHand: before, NewOnHand: bal.QuantityOnHand, Movement: mov}, nil
}
