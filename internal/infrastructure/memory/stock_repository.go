package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

// StockRepository implementa repository.StockRepository en memoria.
type StockRepository struct {
	view
}

func (r *StockRepository) FindByKey(ctx context.Context, key entity.BalanceKey) (*entity.StockBalance, error) {
	var out *entity.StockBalance
	err := r.do(ctx, func(st *state) error {
		if id, ok := st.byKey[key]; ok {
			out = st.balances[id].Clone()
		}
		return nil
	})
	return out, err
}

func (r *StockRepository) GetByID(ctx context.Context, id string) (*entity.StockBalance, error) {
	var out *entity.StockBalance
	err := r.do(ctx, func(st *state) error {
		b, ok := st.balances[id]
		if !ok {
			return fmt.Errorf("%w: saldo %s", domain.ErrNotFound, id)
		}
		out = b.Clone()
		return nil
	})
	return out, err
}

func (r *StockRepository) Insert(ctx context.Context, b *entity.StockBalance) error {
	return r.do(ctx, func(st *state) error {
		if _, ok := st.byKey[b.Key()]; ok {
			return domain.ErrConcurrentModification
		}
		b.Version = 1
		st.balances[b.ID] = b.Clone()
		st.byKey[b.Key()] = b.ID
		return nil
	})
}

func (r *StockRepository) Update(ctx context.Context, b *entity.StockBalance) error {
	return r.do(ctx, func(st *state) error {
		cur, ok := st.balances[b.ID]
		if !ok || cur.Version != b.Version {
			return domain.ErrConcurrentModification
		}
		b.Version++
		st.balances[b.ID] = b.Clone()
		return nil
	})
}

func (r *StockRepository) Delete(ctx context.Context, b *entity.StockBalance) error {
	return r.do(ctx, func(st *state) error {
		cur, ok := st.balances[b.ID]
		if !ok || cur.Version != b.Version {
			return domain.ErrConcurrentModification
		}
		delete(st.balances, b.ID)
		delete(st.byKey, cur.Key())
		return nil
	})
}

// LockSerial no hace nada: las transacciones en memoria ya son serializadas.
func (r *StockRepository) LockSerial(ctx context.Context, _ string) error {
	return ctx.Err()
}

func (r *StockRepository) SerialInStock(ctx context.Context, serial string) (bool, error) {
	found := false
	err := r.do(ctx, func(st *state) error {
		for _, b := range st.balances {
			if b.Serial == serial && b.QuantityOnHand.IsPositive() {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *StockRepository) ListCandidates(ctx context.Context, q repository.CandidateQuery, order inventory.CandidateOrder, limit int) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	err := r.do(ctx, func(st *state) error {
		r.store.topoMu.RLock()
		defer r.store.topoMu.RUnlock()
		for _, b := range st.balances {
			if b.ProductID != q.ProductID || !inventory.Allocatable(b) {
				continue
			}
			if q.ExcludeLocationID != "" && b.LocationID == q.ExcludeLocationID {
				continue
			}
			if !r.store.locations[b.LocationID].Usable() {
				continue
			}
			if q.After != nil && !order.Less(q.After, b) {
				continue
			}
			out = append(out, b.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return order.Less(out[i], out[j]) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *StockRepository) ListByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	err := r.do(ctx, func(st *state) error {
		for _, b := range st.balances {
			if b.ProductID == productID {
				out = append(out, b.Clone())
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].LocationID != out[j].LocationID {
			return out[i].LocationID < out[j].LocationID
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *StockRepository) SumOnHand(ctx context.Context, productID string) (decimal.Decimal, error) {
	return r.sum(ctx, func(b *entity.StockBalance) bool { return b.ProductID == productID })
}

func (r *StockRepository) SumOnHandAt(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	return r.sum(ctx, func(b *entity.StockBalance) bool {
		return b.ProductID == productID && b.LocationID == locationID
	})
}

func (r *StockRepository) sum(ctx context.Context, match func(*entity.StockBalance) bool) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.do(ctx, func(st *state) error {
		for _, b := range st.balances {
			if match(b) {
				total = total.Add(b.QuantityOnHand)
			}
		}
		return nil
	})
	return total, err
}
