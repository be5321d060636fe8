package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-stock-engine/internal/application/dto"
	"github.com/jhoicas/wms-stock-engine/internal/application/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
	"github.com/jhoicas/wms-stock-engine/internal/infrastructure/memory"
	"github.com/jhoicas/wms-stock-engine/pkg/logger"
)

func TestApplyMovement_EntradaYSalidaEliminanElSaldo(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	ctx := context.Background()

	e.receive(t, locRack, "L1", "", "10", nil)
	res, err := e.movements.ApplyMovement(ctx, inventory.MovementInput{
		ProductID: testProduct, LocationID: locRack, Lot: "L1",
		Type: entity.MovementTypeOUT, Quantity: dec("10"), UserID: testUser,
	})
	require.NoError(t, err)
	assert.True(t, res.PreviousOnHand.Equal(dec("10")))
	assert.True(t, res.NewOnHand.IsZero())

	assert.Nil(t, e.balance(t, keyAt(locRack, "L1", "")), "un saldo en cero no debe persistir")

	movs, err := e.store.MovementRepository().ListByKey(ctx, keyAt(locRack, "L1", ""))
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	assert.Equal(t, []string{inventory.EventMovementCommitted, inventory.EventMovementCommitted}, e.pub.types())
}

func TestApplyMovement_SalidaInsuficienteNoModifica(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	e.receive(t, locRack, "L1", "", "3", nil)

	_, err := e.movements.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: testProduct, LocationID: locRack, Lot: "L1",
		Type: entity.MovementTypeLoss, Quantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, e.balance(t, keyAt(locRack, "L1", "")).QuantityOnHand.Equal(dec("3")))

	_, err = e.movements.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: testProduct, LocationID: locRack, Lot: "OTRO",
		Type: entity.MovementTypeOUT, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyMovement_Validaciones(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	ctx := context.Background()

	tests := []struct {
		name string
		in   inventory.MovementInput
		want error
	}{
		{
			name: "cantidad cero",
			in:   inventory.MovementInput{ProductID: testProduct, LocationID: locRack, Type: entity.MovementTypeIN},
			want: domain.ErrInvalidQuantity,
		},
		{
			name: "tipo desconocido",
			in:   inventory.MovementInput{ProductID: testProduct, LocationID: locRack, Type: "TRANSFER", Quantity: dec("1")},
			want: domain.ErrInvalidInput,
		},
		{
			name: "ubicación bloqueada",
			in:   inventory.MovementInput{ProductID: testProduct, LocationID: locBlocked, Type: entity.MovementTypeIN, Quantity: dec("1")},
			want: domain.ErrLocationUnavailable,
		},
		{
			name: "ubicación inexistente",
			in:   inventory.MovementInput{ProductID: testProduct, LocationID: "NOPE", Type: entity.MovementTypeIN, Quantity: dec("1")},
			want: domain.ErrNotFound,
		},
		{
			name: "estado de calidad inválido",
			in:   inventory.MovementInput{ProductID: testProduct, LocationID: locRack, Type: entity.MovementTypeIN, Quantity: dec("1"), QualityStatus: "ROTO"},
			want: domain.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.movements.ApplyMovement(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestApplyMovement_SerieDuplicada(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	ctx := context.Background()
	in := inventory.MovementInput{
		ProductID: testProduct, LocationID: locRack, Serial: "SN-1",
		Type: entity.MovementTypeIN, Quantity: dec("1"),
	}
	_, err := e.movements.ApplyMovement(ctx, in)
	require.NoError(t, err)

	in.LocationID = locRack2
	_, err = e.movements.ApplyMovement(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateSerial)
}

func TestApplyMovement_EstadoDeCalidadDistinto(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	e.receive(t, locRack, "L1", "", "4", nil)

	_, err := e.movements.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID: testProduct, LocationID: locRack, Lot: "L1",
		QualityStatus: entity.QualityDamaged,
		Type:          entity.MovementTypeIN, Quantity: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrQualityStatusMismatch)
}

func TestApplyMovement_BloqueoYDesbloqueo(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	ctx := context.Background()
	e.receive(t, locRack, "L1", "", "6", nil)

	block := inventory.MovementInput{
		ProductID: testProduct, LocationID: locRack, Lot: "L1",
		Type: entity.MovementTypeBlock, Quantity: dec("2"),
	}
	_, err := e.movements.ApplyMovement(ctx, block)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "el bloqueo aplica al saldo completo")

	block.Quantity = dec("6")
	res, err := e.movements.ApplyMovement(ctx, block)
	require.NoError(t, err)
	assert.True(t, res.NewOnHand.Equal(dec("6")), "el bloqueo no cambia el físico")
	assert.Equal(t, entity.QualityBlocked, e.balance(t, keyAt(locRack, "L1", "")).QualityStatus)

	available, err := e.queries.ListAvailable(ctx, testProduct)
	require.NoError(t, err)
	assert.Empty(t, available)

	unblock := block
	unblock.Type = entity.MovementTypeUnblock
	_, err = e.movements.ApplyMovement(ctx, unblock)
	require.NoError(t, err)
	assert.Equal(t, entity.QualityAvailable, e.balance(t, keyAt(locRack, "L1", "")).QualityStatus)
}

func TestApplyMovement_NoBloqueaSaldoReservado(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	ctx := context.Background()
	e.receive(t, locRack, "L1", "", "6", nil)
	_, err := e.allocate.Allocate(ctx, &entity.AllocationDemand{ID: "D1", ProductID: testProduct, QuantityNeeded: dec("2")}, testUser)
	require.NoError(t, err)

	_, err = e.movements.ApplyMovement(ctx, inventory.MovementInput{
		ProductID: testProduct, LocationID: locRack, Lot: "L1",
		Type: entity.MovementTypeBlock, Quantity: dec("6"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// tampoco se puede sacar lo reservado
	_, err = e.movements.ApplyMovement(ctx, inventory.MovementInput{
		ProductID: testProduct, LocationID: locRack, Lot: "L1",
		Type: entity.MovementTypeOUT, Quantity: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyMovement_KardexConcilia(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	ctx := context.Background()
	key := keyAt(locRack, "L1", "")

	steps := []inventory.MovementInput{
		{Type: entity.MovementTypeIN, Quantity: dec("10")},
		{Type: entity.MovementTypeOUT, Quantity: dec("3")},
		{Type: entity.MovementTypePositiveAdjustment, Quantity: dec("2.5")},
		{Type: entity.MovementTypeLoss, Quantity: dec("1")},
		{Type: entity.MovementTypeInventoryAdjustment, Quantity: dec("0.5"), Decrease: true},
		{Type: entity.MovementTypeNegativeAdjustment, Quantity: dec("2")},
	}
	for _, s := range steps {
		s.ProductID, s.LocationID, s.Lot = key.ProductID, key.LocationID, key.Lot
		_, err := e.movements.ApplyMovement(ctx, s)
		require.NoError(t, err, s.Type)
	}

	movs, err := e.store.MovementRepository().ListByKey(ctx, key)
	require.NoError(t, err)
	require.Len(t, movs, len(steps))

	sum := dec("0")
	for i, m := range movs {
		assert.True(t, m.Quantity.IsPositive())
		if i > 0 {
			assert.True(t, m.QuantityBefore.Equal(movs[i-1].QuantityAfter), "cada movimiento parte del anterior")
		}
		sum = sum.Add(m.Delta())
	}
	bal := e.balance(t, key)
	require.NotNil(t, bal)
	assert.True(t, bal.QuantityOnHand.Equal(dec("6")))
	assert.True(t, sum.Equal(bal.QuantityOnHand), "la suma del kardex debe igualar el físico")
}

func TestApplyMovement_SalidasConcurrentes(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	e.receive(t, locRack, "L1", "", "5", nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.movements.ApplyMovement(context.Background(), inventory.MovementInput{
				ProductID: testProduct, LocationID: locRack, Lot: "L1",
				Type: entity.MovementTypeOUT, Quantity: dec("5"),
			})
		}(i)
	}
	wg.Wait()

	ok, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Nil(t, e.balance(t, keyAt(locRack, "L1", "")))
}

func TestAdjustToCount(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	ctx := context.Background()
	key := keyAt(locRack, "L1", "")
	e.receive(t, locRack, "L1", "", "10", nil)

	res, err := e.movements.AdjustToCount(ctx, key, dec("7"), "", testUser, "count-1")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, entity.MovementTypeInventoryAdjustment, res.Movement.Type)
	assert.True(t, res.Movement.Quantity.Equal(dec("3")))
	assert.True(t, res.NewOnHand.Equal(dec("7")))

	res, err = e.movements.AdjustToCount(ctx, key, dec("7"), "", testUser, "count-2")
	require.NoError(t, err)
	assert.Nil(t, res, "sin diferencia no hay movimiento")

	res, err = e.movements.AdjustToCount(ctx, keyAt(locRack2, "L9", ""), dec("4"), "", testUser, "count-3")
	require.NoError(t, err)
	assert.True(t, res.NewOnHand.Equal(dec("4")), "el conteo puede crear un saldo")

	_, err = e.movements.AdjustToCount(ctx, key, dec("-1"), "", testUser, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// racingRunner ejecuta fn sin aislamiento sobre los repositorios del store y dispara race
// justo después de la primera lectura de un saldo.
type racingRunner struct {
	store *memory.Store
	race  func()
	once  sync.Once
}

func (r *racingRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	taskRepo repository.PickTaskRepository,
) error) error {
	stock := &racingStock{StockRepository: r.store.StockRepository(), after: func() { r.once.Do(r.race) }}
	return fn(r.store.MovementRepository(), stock, r.store.TaskRepository())
}

type racingStock struct {
	repository.StockRepository
	after func()
}

func (s *racingStock) FindByKey(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	b, err := s.StockRepository.FindByKey(ctx, key)
	s.after()
	return b, err
}

func TestAdjustToCount_EntradaConcurrenteRecalculaLaDiferencia(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	ctx := context.Background()
	key := keyAt(locRack, "L1", "")
	e.receive(t, locRack, "L1", "", "10", nil)

	runner := &racingRunner{store: e.store, race: func() {
		e.receive(t, locRack, "L1", "", "5", nil)
	}}
	counts := inventory.NewRegisterMovementUseCase(runner, e.store.LocationRepository(), nil, fastRetry(), logger.Nop())

	res, err := counts.AdjustToCount(ctx, key, dec("12"), "", testUser, "count-1")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.PreviousOnHand.Equal(dec("15")), "la diferencia se calcula sobre el saldo releído")
	assert.True(t, res.Movement.Quantity.Equal(dec("3")))
	assert.True(t, e.balance(t, key).QuantityOnHand.Equal(dec("12")))

	movs, err := e.store.MovementRepository().ListByKey(ctx, key)
	require.NoError(t, err)
	sum := dec("0")
	for _, m := range movs {
		sum = sum.Add(m.Delta())
	}
	assert.True(t, sum.Equal(dec("12")))
}

func TestListMovements_LimiteMaximo(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	for i := 0; i <= dto.MaxPageLimit; i++ {
		e.receive(t, locRack, "L1", "", "1", nil)
	}

	movs, err := e.queries.ListMovements(context.Background(), testProduct, nil, nil, 1000, 0)
	require.NoError(t, err)
	assert.Len(t, movs, dto.MaxPageLimit)

	movs, err = e.queries.ListMovements(context.Background(), testProduct, nil, nil, 0, 0)
	require.NoError(t, err)
	assert.Len(t, movs, dto.DefaultPageLimit)
}
