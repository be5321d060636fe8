package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-stock-engine/internal/application/dto"
	"github.com/jhoicas/wms-stock-engine/internal/application/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain"
)

// InventoryHandler maneja movimientos, conteos y consultas de saldo (protegido).
type InventoryHandler struct {
	movements *inventory.RegisterMovementUseCase
	queries   *inventory.StockQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.RegisterMovementUseCase, queries *inventory.StockQueryUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, queries: queries}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, location_id, type, quantity (lote, serie, contenedor opcionales)"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.movements.RegisterMovementFromRequest(c.Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResultResponse(res))
}

// CycleCount godoc
// @Summary      Conciliar conteo cíclico
// @Description  Registra un ajuste de inventario por la diferencia entre lo contado y el físico. 204 si no hay diferencia.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CycleCountRequest  true  "llave del saldo y cantidad contada"
// @Success      201   {object}  dto.MovementResultResponse
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/counts [post]
func (h *InventoryHandler) CycleCount(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.CycleCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.movements.CycleCountFromRequest(c.Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	if res == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResultResponse(res))
}

// ListAvailable godoc
// @Summary      Saldos disponibles de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.AvailableStockResponse
// @Router       /api/inventory/products/{id}/available [get]
func (h *InventoryHandler) ListAvailable(c *fiber.Ctx) error {
	productID := c.Params("id")
	list, err := h.queries.ListAvailable(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.StockBalanceResponse, 0, len(list))
	for _, b := range list {
		items = append(items, inventory.ToStockBalanceResponse(b))
	}
	return c.JSON(dto.AvailableStockResponse{ProductID: productID, Items: items})
}

// TotalOnHand godoc
// @Summary      Físico total de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.TotalOnHandResponse
// @Router       /api/inventory/products/{id}/on-hand [get]
func (h *InventoryHandler) TotalOnHand(c *fiber.Ctx) error {
	productID := c.Params("id")
	total, err := h.queries.TotalOnHand(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TotalOnHandResponse{ProductID: productID, OnHand: total})
}

// ListMovements godoc
// @Summary      Kardex de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        from    query  string  false  "RFC3339"
// @Param        to      query  string  false  "RFC3339"
// @Param        limit   query  int     false  "default 20"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, domain.ErrInvalidInput)
	}
	page.DefaultPage()
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return writeError(c, domain.ErrInvalidInput)
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return writeError(c, domain.ErrInvalidInput)
	}
	list, err := h.queries.ListMovements(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, inventory.ToMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
