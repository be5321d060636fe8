package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-stock-engine/internal/application/dto"
	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura para reportes y listas de tareas.
type StockQueryUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.StockMovementRepository
	taskRepo  repository.PickTaskRepository
}

func NewStockQueryUseCase(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	taskRepo repository.PickTaskRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, movRepo: movRepo, taskRepo: taskRepo}
}

// ListAvailable saldos del producto con disponible > 0 y estado AVAILABLE.
func (uc *StockQueryUseCase) ListAvailable(ctx context.Context, productID string) ([]*entity.StockBalance, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	all, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.StockBalance, 0, len(all))
	for _, b := range all {
		if inventory.Allocatable(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

// TotalOnHand físico total del producto en todas las ubicaciones y estados.
func (uc *StockQueryUseCase) TotalOnHand(ctx context.Context, productID string) (decimal.Decimal, error) {
	if productID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	return uc.stockRepo.SumOnHand(ctx, productID)
}

func (uc *StockQueryUseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]*entity.PickTask, error) {
	page := dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}
	page.DefaultPage()
	filter.Limit, filter.Offset = page.Limit, page.Offset
	return uc.taskRepo.List(ctx, filter)
}

func (uc *StockQueryUseCase) GetTask(ctx context.Context, id string) (*entity.PickTask, error) {
	return uc.taskRepo.GetByID(ctx, id)
}

// ListMovements kardex del producto, del más reciente al más antiguo.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	return uc.movRepo.ListByProduct(ctx, productID, from, to, page.Limit, page.Offset)
}
