package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wms-stock-engine/internal/application/dto"
	"github.com/jhoicas/wms-stock-engine/internal/application/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

// TaskHandler asignación, tareas de picking/reposición y su confirmación (protegido).
type TaskHandler struct {
	allocate      *inventory.AllocateUseCase
	confirm       *inventory.ConfirmPickUseCase
	replenishment *inventory.ReplenishmentUseCase
	queries       *inventory.StockQueryUseCase
}

// NewTaskHandler construye el handler.
func NewTaskHandler(
	allocate *inventory.AllocateUseCase,
	confirm *inventory.ConfirmPickUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	queries *inventory.StockQueryUseCase,
) *TaskHandler {
	return &TaskHandler{allocate: allocate, confirm: confirm, replenishment: replenishment, queries: queries}
}

// Allocate godoc
// @Summary      Asignar stock a una línea de pedido
// @Description  Reserva según la estrategia configurada (FEFO/FIFO/LIFO) y genera tareas de picking.
// @Description  Una asignación parcial no es error: partial=true y remaining > 0.
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocateRequest  true  "demanda"
// @Success      201   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/allocations [post]
func (h *TaskHandler) Allocate(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.AllocateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	demand := &entity.AllocationDemand{
		ID:               in.DemandID,
		ProductID:        in.ProductID,
		QuantityNeeded:   in.QuantityNeeded,
		QuantityReserved: in.QuantityReserved,
	}
	res, err := h.allocate.Allocate(c.Context(), demand, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToAllocationResponse(res))
}

// ListTasks godoc
// @Summary      Listar tareas
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        kind        query  string  false  "PICK | REPLENISHMENT"
// @Param        product_id  query  string  false  "filtrar por producto"
// @Param        pending     query  bool    false  "solo pendientes"
// @Param        limit       query  int     false  "default 20"
// @Param        offset      query  int     false  "default 0"
// @Success      200  {object}  dto.TaskListResponse
// @Router       /api/inventory/tasks [get]
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, domain.ErrInvalidInput)
	}
	page.DefaultPage()
	filter := repository.TaskFilter{
		Kind:        c.Query("kind"),
		ProductID:   c.Query("product_id"),
		OnlyPending: c.QueryBool("pending", false),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	list, err := h.queries.ListTasks(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.TaskListResponse{
		Items: inventory.ToPickTaskResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetTask godoc
// @Summary      Obtener tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.PickTaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	t, err := h.queries.GetTask(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToPickTaskResponse(t))
}

// ConfirmPick godoc
// @Summary      Confirmar tarea de picking o reposición
// @Description  Idempotente: confirmar una tarea ya completada devuelve already_completed=true sin mover stock.
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la tarea"
// @Param        body  body  dto.ConfirmPickRequest  true  "ubicación destino (opcional en reposición)"
// @Success      200   {object}  dto.ConfirmPickResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/tasks/{id}/confirm [post]
func (h *TaskHandler) ConfirmPick(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ConfirmPickRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	res, err := h.confirm.ConfirmPick(c.Context(), c.Params("id"), in.DestinationLocationID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToConfirmPickResponse(res))
}

// RunReplenishment godoc
// @Summary      Ejecutar ciclo de reposición
// @Description  Dispara manualmente el mismo ciclo que ejecuta el planificador.
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReplenishmentScanResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment/scan [post]
func (h *TaskHandler) RunReplenishment(c *fiber.Ctx) error {
	report, err := h.replenishment.RunOnce(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToScanResponse(report))
}
