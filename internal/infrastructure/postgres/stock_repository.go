package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const balanceColumns = `b.id, b.product_id, b.location_id, b.lot, b.serial, b.container_id, b.quality_status,
	b.quantity_on_hand, b.quantity_reserved, b.expires_at, b.received_at, b.version, b.created_at, b.updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func scanBalance(row pgx.Row) (*entity.StockBalance, error) {
	var b entity.StockBalance
	err := row.Scan(
		&b.ID, &b.ProductID, &b.LocationID, &b.Lot, &b.Serial, &b.ContainerID, &b.QualityStatus,
		&b.QuantityOnHand, &b.QuantityReserved, &b.ExpiresAt, &b.ReceivedAt, &b.Version, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBalances(rows pgx.Rows) ([]*entity.StockBalance, error) {
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// FindByKey obtiene el saldo por su llave única; nil, nil si no existe.
func (r *StockRepo) FindByKey(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM stock_balances b
		WHERE b.product_id = $1 AND b.location_id = $2 AND b.lot = $3 AND b.serial = $4 AND b.container_id = $5`
	b, err := scanBalance(r.q.QueryRow(ctx, query, key.ProductID, key.LocationID, key.Lot, key.Serial, key.ContainerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find stock balance: %w", err)
	}
	return b, nil
}

// GetByID obtiene el saldo por ID.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM stock_balances b WHERE b.id = $1`
	b, err := scanBalance(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: saldo %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return b, nil
}

// Insert crea el saldo con versión 1. Si otro escritor creó la misma llave primero devuelve conflicto.
func (r *StockRepo) Insert(ctx context.Context, b *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (id, product_id, location_id, lot, serial, container_id, quality_status,
			quantity_on_hand, quantity_reserved, expires_at, received_at, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.ProductID, b.LocationID, b.Lot, b.Serial, b.ContainerID, b.QualityStatus,
		b.QuantityOnHand, b.QuantityReserved, b.ExpiresAt, b.ReceivedAt, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert stock balance: %w", domain.ErrConcurrentModification)
		}
		return fmt.Errorf("insert stock balance: %w", err)
	}
	b.Version = 1
	return nil
}

// Update persiste cantidades y estado si la versión no cambió, e incrementa la versión.
func (r *StockRepo) Update(ctx context.Context, b *entity.StockBalance) error {
	query := `
		UPDATE stock_balances
		SET quality_status = $3, quantity_on_hand = $4, quantity_reserved = $5, updated_at = $6, version = version + 1
		WHERE id = $1 AND version = $2`
	cmd, err := r.q.Exec(ctx, query, b.ID, b.Version, b.QualityStatus, b.QuantityOnHand, b.QuantityReserved, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	b.Version++
	return nil
}

// Delete elimina el saldo si la versión no cambió.
func (r *StockRepo) Delete(ctx context.Context, b *entity.StockBalance) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM stock_balances WHERE id = $1 AND version = $2`, b.ID, b.Version)
	if err != nil {
		return fmt.Errorf("delete stock balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// LockSerial toma un advisory lock de transacción sobre la serie (se libera en commit/rollback).
func (r *StockRepo) LockSerial(ctx context.Context, serial string) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, serial); err != nil {
		return fmt.Errorf("lock serial: %w", err)
	}
	return nil
}

func (r *StockRepo) SerialInStock(ctx context.Context, serial string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM stock_balances WHERE serial = $1 AND quantity_on_hand > 0)`, serial,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("serial in stock: %w", err)
	}
	return exists, nil
}

// ListCandidates saldos asignables en el orden pedido, con paginación por cursor (keyset).
func (r *StockRepo) ListCandidates(ctx context.Context, q repository.CandidateQuery, order inventory.CandidateOrder, limit int) ([]*entity.StockBalance, error) {
	query, args := candidatesQuery(q, order, limit)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return collectBalances(rows)
}

// candidatesQuery arma el SQL de candidatos; el ORDER BY replica inventory.CandidateOrder.Less.
func candidatesQuery(q repository.CandidateQuery, order inventory.CandidateOrder, limit int) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ` + balanceColumns + `
		FROM stock_balances b
		JOIN locations l ON l.id = b.location_id
		WHERE b.product_id = $1
		  AND b.quality_status = 'AVAILABLE'
		  AND b.quantity_on_hand - b.quantity_reserved > 0
		  AND l.active AND NOT l.blocked`)
	args := []any{q.ProductID}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.ExcludeLocationID != "" {
		sb.WriteString(" AND b.location_id <> " + arg(q.ExcludeLocationID))
	}

	if after := q.After; after != nil {
		switch order {
		case inventory.OrderExpiryAsc:
			if after.ExpiresAt == nil {
				sb.WriteString(" AND b.expires_at IS NULL AND b.id > " + arg(after.ID) + "::uuid")
			} else {
				e, id := arg(*after.ExpiresAt), arg(after.ID)
				sb.WriteString(" AND (b.expires_at IS NULL OR (b.expires_at, b.id) > (" + e + ", " + id + "::uuid))")
			}
		case inventory.OrderReceiptAsc:
			sb.WriteString(" AND (b.received_at, b.id) > (" + arg(after.ReceivedAt) + ", " + arg(after.ID) + "::uuid)")
		case inventory.OrderReceiptDesc:
			sb.WriteString(" AND (b.received_at, b.id) < (" + arg(after.ReceivedAt) + ", " + arg(after.ID) + "::uuid)")
		}
	}

	switch order {
	case inventory.OrderExpiryAsc:
		sb.WriteString(" ORDER BY b.expires_at ASC NULLS LAST, b.id ASC")
	case inventory.OrderReceiptAsc:
		sb.WriteString(" ORDER BY b.received_at ASC, b.id ASC")
	case inventory.OrderReceiptDesc:
		sb.WriteString(" ORDER BY b.received_at DESC, b.id DESC")
	}
	if limit > 0 {
		sb.WriteString(" LIMIT " + arg(limit))
	}
	return sb.String(), args
}

func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM stock_balances b
		WHERE b.product_id = $1
		ORDER BY b.location_id, b.id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	return collectBalances(rows)
}

func (r *StockRepo) SumOnHand(ctx context.Context, productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_on_hand), 0) FROM stock_balances WHERE product_id = $1`, productID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum on hand: %w", err)
	}
	return total, nil
}

func (r *StockRepo) SumOnHandAt(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_on_hand), 0) FROM stock_balances WHERE product_id = $1 AND location_id = $2`,
		productID, locationID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum on hand at location: %w", err)
	}
	return total, nil
}
