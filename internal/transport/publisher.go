package transport

import (
	"context"
	"encoding/json"
	"time"

	"go-catalog-ms/internal/event"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// EventPublisher writes catalog events to the event topic. Delivery is
// fire-and-forget: failures are logged, never returned.
type EventPublisher struct {
	writer  MessageWriter
	topic   string
	timeout time.Duration
	log     zerolog.Logger
}

func NewEventPublisher(writer MessageWriter, topic string, log zerolog.Logger) *EventPublisher {
	return &EventPublisher{writer: writer, topic: topic, timeout: 10 * time.Second, log: log}
}

// Handle is meant to be subscribed to the event bus.
func (p *EventPublisher) Handle(e event.Event) {
	value, err := json.Marshal(e)
	if err != nil {
		p.log.Error().Err(err).Str("event", e.Type).Msg("failed to encode event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic:   p.topic,
		Key:     []byte(e.Key),
		Value:   value,
		Headers: []kafka.Header{{Key: HeaderEventType, Value: []byte(e.Type)}},
	})
	if err != nil {
		p.log.Error().Err(err).Str("event", e.Type).Str("key", e.Key).Msg("failed to publish event")
	}
}
