package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo lectura de ubicaciones sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// GetByID obtiene una ubicación por ID; nil, nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `
		SELECT id, warehouse_id, code, active, blocked, created_at, updated_at
		FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.WarehouseID, &l.Code, &l.Active, &l.Blocked, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

var _ repository.ReplenishmentConfigRepository = (*ReplenishmentConfigRepo)(nil)

// ReplenishmentConfigRepo configuración de reposición por ubicación de picking.
type ReplenishmentConfigRepo struct {
	q Querier
}

// NewReplenishmentConfigRepository construye el adaptador.
func NewReplenishmentConfigRepository(q Querier) *ReplenishmentConfigRepo {
	return &ReplenishmentConfigRepo{q: q}
}

// ListActive configuraciones activas, ordenadas por producto y ubicación.
func (r *ReplenishmentConfigRepo) ListActive(ctx context.Context) ([]*entity.ReplenishmentConfig, error) {
	query := `
		SELECT id, product_id, location_id, reorder_point, max_capacity, active
		FROM replenishment_configs
		WHERE active
		ORDER BY product_id, location_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list replenishment configs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReplenishmentConfig
	for rows.Next() {
		var c entity.ReplenishmentConfig
		if err := rows.Scan(&c.ID, &c.ProductID, &c.LocationID, &c.ReorderPoint, &c.MaxCapacity, &c.Active); err != nil {
			return nil, fmt.Errorf("scan replenishment config: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
