package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

// TaskRepository tareas de picking y reposición en memoria.
type TaskRepository struct {
	view
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.PickTask) error {
	return r.do(ctx, func(st *state) error {
		if _, ok := st.tasks[t.ID]; ok {
			return fmt.Errorf("%w: tarea %s duplicada", domain.ErrInvalidInput, t.ID)
		}
		st.tasks[t.ID] = t.Clone()
		st.taskOrder = append(st.taskOrder, t.ID)
		return nil
	})
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.PickTask, error) {
	var out *entity.PickTask
	err := r.do(ctx, func(st *state) error {
		t, ok := st.tasks[id]
		if !ok {
			return fmt.Errorf("%w: tarea %s", domain.ErrNotFound, id)
		}
		out = t.Clone()
		return nil
	})
	return out, err
}

func (r *TaskRepository) MarkCompleted(ctx context.Context, t *entity.PickTask) error {
	return r.do(ctx, func(st *state) error {
		cur, ok := st.tasks[t.ID]
		if !ok {
			return fmt.Errorf("%w: tarea %s", domain.ErrNotFound, t.ID)
		}
		if cur.Completed {
			return domain.ErrConcurrentModification
		}
		cur.Completed = true
		cur.CompletedAt = t.CompletedAt
		cur.CompletedBy = t.CompletedBy
		cur.DestinationLocationID = t.DestinationLocationID
		st.tasks[t.ID] = cur.Clone()
		return nil
	})
}

// List en orden de creación.
func (r *TaskRepository) List(ctx context.Context, f repository.TaskFilter) ([]*entity.PickTask, error) {
	out := []*entity.PickTask{}
	err := r.do(ctx, func(st *state) error {
		skipped := 0
		for _, id := range st.taskOrder {
			t := st.tasks[id]
			if f.Kind != "" && t.Kind != f.Kind {
				continue
			}
			if f.ProductID != "" && t.ProductID != f.ProductID {
				continue
			}
			if f.OnlyPending && t.Completed {
				continue
			}
			if skipped < f.Offset {
				skipped++
				continue
			}
			if f.Limit > 0 && len(out) >= f.Limit {
				break
			}
			out = append(out, t.Clone())
		}
		return nil
	})
	return out, err
}

func (r *TaskRepository) HasPendingReplenishment(ctx context.Context, productID, destinationLocationID string) (bool, error) {
	found := false
	err := r.do(ctx, func(st *state) error {
		for _, t := range st.tasks {
			if t.Kind == entity.TaskKindReplenishment && !t.Completed &&
				t.ProductID == productID && t.DestinationLocationID == destinationLocationID {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}
