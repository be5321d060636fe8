package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/pkg/logger"
)

// Tipos de evento emitidos por el motor.
const (
	EventMovementCommitted = "stock.movement.committed"
	EventTaskCreated       = "task.created"
	EventTaskCompleted     = "task.completed"
)

// Event mensaje de salida. Key agrupa por producto para conservar el orden por partición.
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// NoopPublisher descarta los eventos (sin broker configurado).
type NoopPublisher struct{}

// Publish no hace nada.
func (NoopPublisher) Publish(context.Context, ...Event) error { return nil }

func movementEvent(m *entity.StockMovement) Event {
	return Event{Type: EventMovementCommitted, Key: m.ProductID, OccurredAt: m.CreatedAt, Payload: m}
}

func taskEvent(typ string, t *entity.PickTask, at time.Time) Event {
	return Event{Type: typ, Key: t.ProductID, OccurredAt: at, Payload: t}
}

// publish envía los eventos y solo registra el error.
func publish(ctx context.Context, pub EventPublisher, log *logger.Logger, events ...Event) {
	if pub == nil || len(events) == 0 {
		return
	}
	if err := pub.Publish(ctx, events...); err != nil {
		log.Warn().Err(err).Int("events", len(events)).Msg("publicar eventos de inventario")
	}
}
