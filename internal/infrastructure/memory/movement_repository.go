package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
)

// MovementRepository kardex en memoria (solo inserción).
type MovementRepository struct {
	view
}

func (r *MovementRepository) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.do(ctx, func(st *state) error {
		c := *m
		st.movements = append(st.movements, &c)
		return nil
	})
}

// ListByProduct del más reciente al más antiguo.
func (r *MovementRepository) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.do(ctx, func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.ProductID != productID {
				continue
			}
			if from != nil && m.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && m.CreatedAt.After(*to) {
				continue
			}
			c := *m
			out = append(out, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*entity.StockMovement{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListByKey en orden de registro.
func (r *MovementRepository) ListByKey(ctx context.Context, key entity.BalanceKey) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.do(ctx, func(st *state) error {
		for _, m := range st.movements {
			if m.ProductID == key.ProductID && m.LocationID == key.LocationID && m.Lot == key.Lot &&
				m.Serial == key.Serial && m.ContainerID == key.ContainerID {
				c := *m
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}
