package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-stock-engine/internal/application/dto"
	"github.com/jhoicas/wms-stock-engine/internal/application/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/wms-stock-engine/internal/interfaces/http"
)

func buildInventoryApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	for _, id := range []string{"RACK-1", "PICK-1", "DOCK"} {
		store.AddLocation(&entity.Location{ID: id, Code: id, Active: true})
	}
	store.AddLocation(&entity.Location{ID: "BLOCKED", Code: "BLOCKED", Active: true, Blocked: true})

	tx := memory.NewTxRunner(store)
	retry := inventory.RetryPolicy{MaxAttempts: 3}
	strategy, err := inventory.StrategyByName("FEFO", 10)
	require.NoError(t, err)

	stockRepo := store.StockRepository()
	taskRepo := store.TaskRepository()
	deps := apphttp.RouterDeps{
		RegisterMovement: inventory.NewRegisterMovementUseCase(tx, store.LocationRepository(), nil, retry, nil),
		Allocate:         inventory.NewAllocateUseCase(tx, stockRepo, strategy, nil, retry, nil),
		ConfirmPick:      inventory.NewConfirmPickUseCase(tx, store.LocationRepository(), nil, retry, nil),
		Replenishment: inventory.NewReplenishmentUseCase(tx, store.ReplenishmentConfigRepository(),
			stockRepo, taskRepo, strategy, nil, retry, nil),
		Queries:   inventory.NewStockQueryUseCase(stockRepo, store.MovementRepository(), taskRepo),
		JWTSecret: testJWTSecret,
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestInventoryAPI_FlujoCompleto(t *testing.T) {
	app := buildInventoryApp(t)

	var mov dto.MovementResultResponse
	status := doJSON(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": "SKU-1", "location_id": "RACK-1", "type": "IN", "quantity": 10, "lot": "A",
	}, &mov)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "0", mov.PreviousOnHand.String())
	assert.Equal(t, "10", mov.NewOnHand.String())
	assert.Equal(t, testUserID, mov.Movement.CreatedBy)

	var alloc dto.AllocationResponse
	status = doJSON(t, app, http.MethodPost, "/api/inventory/allocations", map[string]any{
		"demand_id": "SO-1/1", "product_id": "SKU-1", "quantity_needed": 4,
	}, &alloc)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, alloc.Tasks, 1)
	assert.False(t, alloc.Partial)
	assert.Equal(t, "0", alloc.Remaining.String())

	taskID := alloc.Tasks[0].ID
	var conf dto.ConfirmPickResponse
	status = doJSON(t, app, http.MethodPost, "/api/inventory/tasks/"+taskID+"/confirm",
		dto.ConfirmPickRequest{DestinationLocationID: "DOCK"}, &conf)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, conf.AlreadyCompleted)
	assert.True(t, conf.Task.Completed)

	status = doJSON(t, app, http.MethodPost, "/api/inventory/tasks/"+taskID+"/confirm",
		dto.ConfirmPickRequest{DestinationLocationID: "DOCK"}, &conf)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, conf.AlreadyCompleted)

	var total dto.TotalOnHandResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/inventory/products/SKU-1/on-hand", nil, &total))
	assert.Equal(t, "10", total.OnHand.String(), "el picking mueve stock, no lo consume")

	var avail dto.AvailableStockResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/inventory/products/SKU-1/available", nil, &avail))
	assert.Len(t, avail.Items, 2)

	var kardex dto.MovementListResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/inventory/products/SKU-1/movements", nil, &kardex))
	assert.Len(t, kardex.Items, 3)

	var tasks dto.TaskListResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/inventory/tasks?kind=PICK", nil, &tasks))
	assert.Len(t, tasks.Items, 1)
}

func TestInventoryAPI_MapeoDeErrores(t *testing.T) {
	app := buildInventoryApp(t)

	status := doJSON(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": "SKU-1", "location_id": "RACK-1", "type": "IN", "quantity": 0,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status, "cantidad cero es error de validación")

	status = doJSON(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": "SKU-1", "location_id": "BLOCKED", "type": "IN", "quantity": 1,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status, "ubicación bloqueada")

	status = doJSON(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": "SKU-1", "location_id": "RACK-1", "type": "OUT", "quantity": 5,
	}, nil)
	assert.Equal(t, http.StatusConflict, status, "salida sin stock")

	status = doJSON(t, app, http.MethodGet, "/api/inventory/tasks/no-existe", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestInventoryAPI_ConteoSinDiferencia(t *testing.T) {
	app := buildInventoryApp(t)

	status := doJSON(t, app, http.MethodPost, "/api/inventory/counts", map[string]any{
		"product_id": "SKU-9", "location_id": "RACK-1", "counted": 0,
	}, nil)
	assert.Equal(t, http.StatusNoContent, status)
}

func TestInventoryAPI_ReposicionManual(t *testing.T) {
	app := buildInventoryApp(t)

	var scan dto.ReplenishmentScanResponse
	status := doJSON(t, app, http.MethodPost, "/api/inventory/replenishment/scan", nil, &scan)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, scan.Scanned)
	assert.NotNil(t, scan.Tasks)
}
