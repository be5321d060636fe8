package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, transaction_id, type, product_id, location_id, lot, serial, container_id,
	quantity, quantity_before, quantity_after, created_by, reference, created_at`

// StockMovementRepo kardex sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento del kardex.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TransactionID, m.Type, m.ProductID, m.LocationID, m.Lot, m.Serial, m.ContainerID,
		m.Quantity, m.QuantityBefore, m.QuantityAfter, nullIfEmpty(m.CreatedBy), nullIfEmpty(m.Reference), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas, del más reciente al más antiguo.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	return collectMovements(rows)
}

// ListByKey movimientos de un saldo en orden de registro.
func (r *StockMovementRepo) ListByKey(ctx context.Context, key entity.BalanceKey) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1 AND location_id = $2 AND lot = $3 AND serial = $4 AND container_id = $5
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, key.ProductID, key.LocationID, key.Lot, key.Serial, key.ContainerID)
	if err != nil {
		return nil, fmt.Errorf("list movements by key: %w", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy, reference *string
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.Type, &m.ProductID, &m.LocationID, &m.Lot, &m.Serial,
			&m.ContainerID, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter, &createdBy, &reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.CreatedBy = derefString(createdBy)
		m.Reference = derefString(reference)
		list = append(list, &m)
	}
	return list, rows.Err()
}
