package repository

import (
	"context"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CandidateQuery filtro de saldos candidatos para una reserva.
type CandidateQuery struct {
	ProductID         string
	ExcludeLocationID string // reposición: no tomar stock de la propia ubicación de picking
	// After cursor de paginación: solo saldos posteriores a este en el orden pedido.
	After *entity.StockBalance
}

// StockRepository puerto de persistencia de saldos. Toda escritura se protege con la versión
// del saldo (concurrencia optimista): Update y Delete devuelven domain.ErrConcurrentModification
// si la versión no coincide; Insert lo devuelve si la llave ya existe.
type StockRepository interface {
	// FindByKey devuelve nil, nil si no existe el saldo.
	FindByKey(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error)
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.StockBalance, error)
	Insert(ctx context.Context, b *entity.StockBalance) error
	// Update persiste b si b.Version coincide y la incrementa.
	Update(ctx context.Context, b *entity.StockBalance) error
	Delete(ctx context.Context, b *entity.StockBalance) error

	// LockSerial serializa dentro de la transacción las entradas de una misma serie.
	LockSerial(ctx context.Context, serial string) error
	// SerialInStock indica si la serie tiene físico positivo en cualquier ubicación.
	SerialInStock(ctx context.Context, serial string) (bool, error)

	// ListCandidates saldos asignables (disponible > 0, AVAILABLE, ubicación activa y no bloqueada)
	// en el orden pedido, a partir del cursor q.After.
	ListCandidates(ctx context.Context, q CandidateQuery, order inventory.CandidateOrder, limit int) ([]*entity.StockBalance, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error)
	SumOnHand(ctx context.Context, productID string) (decimal.Decimal, error)
	SumOnHandAt(ctx context.Context, productID, locationID string) (decimal.Decimal, error)
}
