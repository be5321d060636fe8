package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jhoicas/wms-stock-engine/internal/application/inventory"
	"github.com/jhoicas/wms-stock-engine/pkg/config"
)

var _ inventory.EventPublisher = (*KafkaPublisher)(nil)

// MessageWriter lo cumple *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica los eventos del motor en un tópico Kafka, en JSON, con la llave
// del producto para conservar el orden por partición.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaWriter crea el writer para los brokers y tópico configurados.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
		RequiredAcks: kafka.RequireAll,
	}
}

// NewKafkaPublisher construye el publicador sobre w.
func NewKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish serializa y envía los eventos en un único lote. El contexto de traza viaja en los headers.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...inventory.Event) error {
	if len(events) == 0 {
		return nil
	}
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("serializar evento %s: %w", ev.Type, err)
		}
		headers := []kafka.Header{{Key: "event_type", Value: []byte(ev.Type)}}
		for k, v := range carrier {
			headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
		}
		msgs = append(msgs, kafka.Message{
			Key:     []byte(ev.Key),
			Value:   payload,
			Headers: headers,
			Time:    ev.OccurredAt,
		})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

// Close cierra el writer subyacente.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
