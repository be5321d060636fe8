package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

var _ repository.PickTaskRepository = (*PickTaskRepo)(nil)

const taskColumns = `id, kind, demand_id, product_id, balance_id, source_location_id, destination_location_id,
	lot, serial, container_id, quantity_planned, completed, completed_at, completed_by, created_by, created_at`

// PickTaskRepo tareas de picking y reposición sobre PostgreSQL (usable con pool o tx).
type PickTaskRepo struct {
	q Querier
}

// NewPickTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPickTaskRepository(q Querier) *PickTaskRepo {
	return &PickTaskRepo{q: q}
}

func scanTask(row pgx.Row) (*entity.PickTask, error) {
	var t entity.PickTask
	var demandID, dest, completedBy, createdBy *string
	err := row.Scan(&t.ID, &t.Kind, &demandID, &t.ProductID, &t.BalanceID, &t.SourceLocationID, &dest,
		&t.Lot, &t.Serial, &t.ContainerID, &t.QuantityPlanned, &t.Completed, &t.CompletedAt, &completedBy,
		&createdBy, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.DemandID = derefString(demandID)
	t.DestinationLocationID = derefString(dest)
	t.CompletedBy = derefString(completedBy)
	t.CreatedBy = derefString(createdBy)
	return &t, nil
}

// Create persiste una tarea nueva.
func (r *PickTaskRepo) Create(ctx context.Context, t *entity.PickTask) error {
	query := `
		INSERT INTO pick_tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false, NULL, NULL, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Kind, nullIfEmpty(t.DemandID), t.ProductID, t.BalanceID, t.SourceLocationID,
		nullIfEmpty(t.DestinationLocationID), t.Lot, t.Serial, t.ContainerID, t.QuantityPlanned,
		nullIfEmpty(t.CreatedBy), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create pick task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *PickTaskRepo) GetByID(ctx context.Context, id string) (*entity.PickTask, error) {
	t, err := scanTask(r.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM pick_tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: tarea %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("get pick task: %w", err)
	}
	return t, nil
}

// MarkCompleted cierra la tarea solo si seguía pendiente.
func (r *PickTaskRepo) MarkCompleted(ctx context.Context, t *entity.PickTask) error {
	query := `
		UPDATE pick_tasks
		SET completed = true, completed_at = $2, completed_by = $3, destination_location_id = $4
		WHERE id = $1 AND NOT completed`
	cmd, err := r.q.Exec(ctx, query, t.ID, t.CompletedAt, nullIfEmpty(t.CompletedBy), nullIfEmpty(t.DestinationLocationID))
	if err != nil {
		return fmt.Errorf("complete pick task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

// List tareas en orden de creación.
func (r *PickTaskRepo) List(ctx context.Context, f repository.TaskFilter) ([]*entity.PickTask, error) {
	query := `SELECT ` + taskColumns + ` FROM pick_tasks WHERE true`
	args := []any{}
	pos := 1
	if f.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, f.Kind)
		pos++
	}
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.OnlyPending {
		query += " AND NOT completed"
	}
	query += fmt.Sprintf(" ORDER BY created_at, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pick tasks: %w", err)
	}
	defer rows.Close()
	list := []*entity.PickTask{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pick task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PickTaskRepo) HasPendingReplenishment(ctx context.Context, productID, destinationLocationID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pick_tasks
			WHERE kind = 'REPLENISHMENT' AND NOT completed
			  AND product_id = $1 AND destination_location_id = $2
		)`, productID, destinationLocationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pending replenishment: %w", err)
	}
	return exists, nil
}
