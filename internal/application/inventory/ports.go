package inventory

import (
	"context"

	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: si fn devuelve error se hace Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		taskRepo repository.PickTaskRepository,
	) error) error
}

// EventPublisher emite eventos de salida después de un commit exitoso.
// Un fallo al publicar se registra en log; nunca revierte la operación ya confirmada.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}
