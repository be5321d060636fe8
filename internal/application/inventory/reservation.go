package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-stock-engine/internal/domain"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

// taskBuilder arma la tarea para la cantidad reservada sobre el saldo b. Puede rechazar la
// reserva devolviendo error (la tx se revierte completa).
type taskBuilder func(ctx context.Context, taskRepo repository.PickTaskRepository, b *entity.StockBalance, qty decimal.Decimal, now time.Time) (*entity.PickTask, error)

// reserveBalance reserva min(disponible, want) sobre el candidato y crea su tarea en la misma tx.
// El primer intento usa la versión leída al listar candidatos; si hubo conflicto se relee el saldo
// y se recalcula la cantidad. Devuelve nil, nil si el saldo ya no tiene disponible.
func reserveBalance(
	ctx context.Context,
	txRunner TxRunner,
	retry RetryPolicy,
	candidate *entity.StockBalance,
	want decimal.Decimal,
	build taskBuilder,
) (*entity.PickTask, error) {
	var task *entity.PickTask
	err := retry.Do(ctx, func(attempt int) error {
		task = nil
		return txRunner.Run(ctx, func(
			_ repository.StockMovementRepository,
			stockRepo repository.StockRepository,
			taskRepo repository.PickTaskRepository,
		) error {
			b := candidate.Clone()
			if attempt > 1 {
				fresh, err := stockRepo.GetByID(ctx, candidate.ID)
				if errors.Is(err, domain.ErrNotFound) {
					return nil
				}
				if err != nil {
					return err
				}
				b = fresh
			}
			if !inventory.Allocatable(b) {
				return nil
			}
			qty := decimal.Min(b.Available(), want)
			now := time.Now()
			b.QuantityReserved = b.QuantityReserved.Add(qty)
			b.UpdatedAt = now
			if err := stockRepo.Update(ctx, b); err != nil {
				return err
			}
			t, err := build(ctx, taskRepo, b, qty, now)
			if err != nil {
				return err
			}
			if err := taskRepo.Create(ctx, t); err != nil {
				return err
			}
			task = t
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}
