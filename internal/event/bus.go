package event

import (
	"time"

	"github.com/asaskevich/EventBus"
)

const (
	ProductCreated       = "product.created"
	ProductTagCreated    = "product_tag.created"
	ProductSizeCreated   = "product_size.created"
	ProductRecipeCreated = "product_recipe.created"
)

// topic every catalog event travels on inside the process.
const topic = "catalog:event"

// Event is the envelope sent to subscribers and written to the event topic.
type Event struct {
	Type       string      `json:"type"`
	Key        string      `json:"-"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurredAt"`
}

func New(eventType, key string, payload interface{}) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// Bus fans events out to async subscribers; Publish never waits for them.
type Bus struct {
	bus EventBus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

func (b *Bus) Publish(e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	b.bus.Publish(topic, e)
}

// Subscribe registers fn. Each event is handled on its own goroutine, so fn
// must be safe for concurrent use.
func (b *Bus) Subscribe(fn func(Event)) error {
	return b.bus.SubscribeAsync(topic, fn, false)
}

// Wait blocks until every async subscriber has drained.
func (b *Bus) Wait() {
	b.bus.WaitAsync()
}
