package repository

import (
	"context"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
)

// TaskFilter filtro para listar tareas.
type TaskFilter struct {
	Kind          string
	ProductID     string
	OnlyPending   bool
	Limit, Offset int
}

// PickTaskRepository puerto de persistencia de tareas de picking y reposición.
type PickTaskRepository interface {
	Create(ctx context.Context, task *entity.PickTask) error
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.PickTask, error)
	// MarkCompleted persiste el cierre (completada, fecha, usuario y destino) solo si seguía pendiente;
	// si otro escritor ya la completó devuelve domain.ErrConcurrentModification.
	MarkCompleted(ctx context.Context, task *entity.PickTask) error
	List(ctx context.Context, filter TaskFilter) ([]*entity.PickTask, error)
	// HasPendingReplenishment indica si ya existe una reposición pendiente hacia (producto, destino).
	HasPendingReplenishment(ctx context.Context, productID, destinationLocationID string) (bool, error)
}
