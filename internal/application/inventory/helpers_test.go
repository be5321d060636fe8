package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-stock-engine/internal/application/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/infrastructure/memory"
	"github.com/jhoicas/wms-stock-engine/pkg/logger"
)

const (
	testProduct = "SKU-1"
	testUser    = "user-1"

	locRack    = "RACK-1"
	locRack2   = "RACK-2"
	locPick    = "PICK-1"
	locDock    = "DOCK"
	locBlocked = "BLOCKED"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// recordingPublisher guarda los eventos publicados.
type recordingPublisher struct {
	mu     sync.Mutex
	events []inventory.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...inventory.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type engine struct {
	store         *memory.Store
	pub           *recordingPublisher
	movements     *inventory.RegisterMovementUseCase
	allocate      *inventory.AllocateUseCase
	confirm       *inventory.ConfirmPickUseCase
	replenishment *inventory.ReplenishmentUseCase
	queries       *inventory.StockQueryUseCase
}

func newEngine(t *testing.T, strategyName string) *engine {
	t.Helper()
	store := memory.NewStore()
	for _, id := range []string{locRack, locRack2, locPick, locDock} {
		store.AddLocation(&entity.Location{ID: id, WarehouseID: "WH-1", Code: id, Active: true})
	}
	store.AddLocation(&entity.Location{ID: locBlocked, WarehouseID: "WH-1", Code: locBlocked, Active: true, Blocked: true})

	strategy, err := inventory.StrategyByName(strategyName, 2)
	require.NoError(t, err)

	pub := &recordingPublisher{}
	tx := memory.NewTxRunner(store)
	log := logger.Nop()
	return &engine{
		store:         store,
		pub:           pub,
		movements:     inventory.NewRegisterMovementUseCase(tx, store.LocationRepository(), pub, fastRetry(), log),
		allocate:      inventory.NewAllocateUseCase(tx, store.StockRepository(), strategy, pub, fastRetry(), log),
		confirm:       inventory.NewConfirmPickUseCase(tx, store.LocationRepository(), pub, fastRetry(), log),
		replenishment: inventory.NewReplenishmentUseCase(tx, store.ReplenishmentConfigRepository(), store.StockRepository(), store.TaskRepository(), strategy, pub, fastRetry(), log),
		queries:       inventory.NewStockQueryUseCase(store.StockRepository(), store.MovementRepository(), store.TaskRepository()),
	}
}

// receive registra una entrada con los datos mínimos.
func (e *engine) receive(t *testing.T, location, lot, container, qty string, expiresAt *time.Time) {
	t.Helper()
	_, err := e.movements.ApplyMovement(context.Background(), inventory.MovementInput{
		ProductID:   testProduct,
		LocationID:  location,
		Lot:         lot,
		ContainerID: container,
		Type:        entity.MovementTypeIN,
		Quantity:    dec(qty),
		ExpiresAt:   expiresAt,
		UserID:      testUser,
	})
	require.NoError(t, err)
}

func (e *engine) balance(t *testing.T, key entity.BalanceKey) *entity.StockBalance {
	t.Helper()
	b, err := e.store.StockRepository().FindByKey(context.Background(), key)
	require.NoError(t, err)
	return b
}

func keyAt(location, lot, container string) entity.BalanceKey {
	return entity.BalanceKey{ProductID: testProduct, LocationID: location, Lot: lot, ContainerID: container}
}

func daysFromNow(n int) *time.Time {
	t := time.Now().Add(time.Duration(n) * 24 * time.Hour).UTC().Truncate(time.Second)
	return &t
}
