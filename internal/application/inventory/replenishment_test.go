package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-stock-engine/internal/application/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
	"github.com/jhoicas/wms-stock-engine/internal/infrastructure/memory"
	"github.com/jhoicas/wms-stock-engine/pkg/logger"
)

func withPickFaceConfig(e *engine) {
	e.store.AddReplenishmentConfig(&entity.ReplenishmentConfig{
		ID:           "RC-1",
		ProductID:    testProduct,
		LocationID:   locPick,
		ReorderPoint: dec("5"),
		MaxCapacity:  dec("20"),
		Active:       true,
	})
}

func TestReplenishment_CicloCompleto(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	ctx := context.Background()
	withPickFaceConfig(e)
	e.receive(t, locPick, "L1", "", "8", nil)
	e.receive(t, locRack, "L1", "", "100", nil)

	report, err := e.replenishment.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 0, report.Generated, "por encima del punto de reorden no se repone")

	_, err = e.movements.ApplyMovement(ctx, inventory.MovementInput{
		ProductID: testProduct, LocationID: locPick, Lot: "L1",
		Type: entity.MovementTypeOUT, Quantity: dec("3"),
	})
	require.NoError(t, err)

	report, err = e.replenishment.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, report.Generated, "en el punto de reorden se repone")
	task := report.Tasks[0]
	assert.Equal(t, entity.TaskKindReplenishment, task.Kind)
	assert.Equal(t, locRack, task.SourceLocationID)
	assert.Equal(t, locPick, task.DestinationLocationID)
	assert.True(t, task.QuantityPlanned.Equal(dec("15")))
	assert.Equal(t, "system", task.CreatedBy)

	report, err = e.replenishment.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Generated, "no se duplica una reposición pendiente")
	assert.Equal(t, 1, report.Skipped)

	res, err := e.confirm.ConfirmPick(ctx, task.ID, "", testUser)
	require.NoError(t, err)
	assert.Equal(t, locPick, res.Inbound.Movement.LocationID)

	total, err := e.store.StockRepository().SumOnHandAt(ctx, testProduct, locPick)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("20")))
	assert.True(t, e.balance(t, keyAt(locRack, "L1", "")).QuantityOnHand.Equal(dec("85")))

	report, err = e.replenishment.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Generated)
}

func TestReplenishment_SinOrigenDisponible(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	withPickFaceConfig(e)
	e.receive(t, locPick, "L1", "", "2", nil)

	report, err := e.replenishment.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Generated)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, report.Failed)
}

func TestReplenishmentScheduler_StartStop(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	withPickFaceConfig(e)
	e.receive(t, locRack, "L1", "", "50", nil)

	s := inventory.NewReplenishmentScheduler(e.replenishment, 5*time.Millisecond, logger.Nop())
	s.Start(context.Background())
	s.Start(context.Background())

	assert.Eventually(t, func() bool {
		pending, err := e.store.TaskRepository().HasPendingReplenishment(context.Background(), testProduct, locPick)
		return err == nil && pending
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	s.Stop()

	tasks, err := e.queries.ListTasks(context.Background(), repository.TaskFilter{Kind: entity.TaskKindReplenishment})
	require.NoError(t, err)
	assert.Len(t, tasks, 1, "varios ciclos no duplican la tarea pendiente")
}

func TestReplenishmentScheduler_TerminaConElContexto(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	ctx, cancel := context.WithCancel(context.Background())
	s := inventory.NewReplenishmentScheduler(e.replenishment, 0, nil)
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop no terminó tras cancelar el contexto")
	}
}

// failingSums falla la lectura de físico de un producto.
type failingSums struct {
	repository.StockRepository
	productID string
}

func (f *failingSums) SumOnHandAt(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	if productID == f.productID {
		return decimal.Zero, errors.New("lectura de saldo fallida")
	}
	return f.StockRepository.SumOnHandAt(ctx, productID, locationID)
}

func TestReplenishment_FalloDeUnaConfiguracionNoDetieneLasDemas(t *testing.T) {
	e := newEngine(t, inventory.StrategyFEFO)
	e.store.AddReplenishmentConfig(&entity.ReplenishmentConfig{
		ID: "RC-ROTO", ProductID: "SKU-ROTO", LocationID: locPick,
		ReorderPoint: dec("5"), MaxCapacity: dec("20"), Active: true,
	})
	withPickFaceConfig(e)
	e.receive(t, locRack, "L1", "", "50", nil)

	uc := inventory.NewReplenishmentUseCase(
		memory.NewTxRunner(e.store),
		e.store.ReplenishmentConfigRepository(),
		&failingSums{StockRepository: e.store.StockRepository(), productID: "SKU-ROTO"},
		e.store.TaskRepository(),
		inventory.FEFO{},
		nil, fastRetry(), logger.Nop(),
	)

	report, err := uc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Generated)
	require.Len(t, report.Tasks, 1)
	assert.Equal(t, testProduct, report.Tasks[0].ProductID)
	assert.True(t, report.Tasks[0].QuantityPlanned.Equal(dec("20")))
}
