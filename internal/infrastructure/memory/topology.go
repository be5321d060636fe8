package memory

import (
	"context"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
)

// LocationRepository lectura de ubicaciones registradas con Store.AddLocation.
type LocationRepository struct {
	store *Store
}

// GetByID devuelve nil, nil si la ubicación no existe.
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.topoMu.RLock()
	defer r.store.topoMu.RUnlock()
	l, ok := r.store.locations[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

// ReplenishmentConfigRepository lectura de configuraciones registradas con Store.AddReplenishmentConfig.
type ReplenishmentConfigRepository struct {
	store *Store
}

func (r *ReplenishmentConfigRepository) ListActive(ctx context.Context) ([]*entity.ReplenishmentConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.topoMu.RLock()
	defer r.store.topoMu.RUnlock()
	out := make([]*entity.ReplenishmentConfig, 0, len(r.store.configs))
	for _, c := range r.store.configs {
		if c.Active {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}
