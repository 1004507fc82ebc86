package service

import (
	"context"
	"errors"

	"go-catalog-ms/internal/event"
	"go-catalog-ms/pkg/rpcerr"
	"go-catalog-ms/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Creatable is a create payload that builds the row it describes.
type Creatable[T any] interface {
	ToModel() *T
}

// ProductItem is a sub-resource payload; the owning product comes from the envelope.
type ProductItem[T any] interface {
	ToModel(productID uuid.UUID) *T
}

// Patch is an update payload. Updates holds only the columns the caller sent.
type Patch interface {
	Updates() map[string]interface{}
}

// checker is implemented by payloads with rules the validator tags can't express.
type checker interface {
	Check() error
}

// Publisher receives catalog events. *event.Bus satisfies it.
type Publisher interface {
	Publish(e event.Event)
}

type options struct {
	publisher    Publisher
	createdEvent string
	trees        *TreeCache
}

type Option func(*options)

// WithCreatedEvent publishes eventType with the new row after every create.
func WithCreatedEvent(eventType string, publisher Publisher) Option {
	return func(o *options) {
		o.createdEvent = eventType
		o.publisher = publisher
	}
}

// WithTreeInvalidation drops cached product trees after every write.
func WithTreeInvalidation(trees *TreeCache) Option {
	return func(o *options) {
		o.trees = trees
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) created(item interface{}) {
	if o.publisher == nil || o.createdEvent == "" {
		return
	}
	var key string
	if e, ok := item.(interface{ EntityID() uuid.UUID }); ok {
		key = e.EntityID().String()
	}
	o.publisher.Publish(event.New(o.createdEvent, key, item))
}

func (o options) changed(ctx context.Context) {
	o.trees.Invalidate(ctx)
}

func validate(req interface{}) error {
	if err := validator.Validate(req); err != nil {
		return err
	}
	if c, ok := req.(checker); ok {
		return c.Check()
	}
	return nil
}

func notFound(err error, entity string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rpcerr.NotFound("%s with id %s not found", entity, id)
	}
	return err
}

// set copies *v into m under column when the caller sent it.
func set[V any](m map[string]interface{}, column string, v *V) {
	if v != nil {
		m[column] = *v
	}
}
