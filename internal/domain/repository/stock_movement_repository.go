package repository

import (
	"context"
	"time"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
)

// StockMovementRepository puerto del kardex (solo inserción y consulta).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByKey(ctx context.Context, key entity.BalanceKey) ([]*entity.StockMovement, error)
}
