package repository

import (
	"context"

	"go-catalog-ms/pkg/pagination"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type RowOptions struct {
	// Order for FindAll, "created_at ASC, id ASC" when empty.
	Order    string
	Preloads []Preload
	// Scope narrows every query, e.g. to one item_type.
	Scope func(*gorm.DB) *gorm.DB
}

// RowRepository serves a physically deleted model.
type RowRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	FindAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) (*T, error)
}

type rowRepo[T any] struct {
	db   *gorm.DB
	opts RowOptions
}

func NewRowRepo[T any](db *gorm.DB, opts RowOptions) RowRepository[T] {
	return newRowRepo[T](db, opts)
}

func newRowRepo[T any](db *gorm.DB, opts RowOptions) *rowRepo[T] {
	if opts.Order == "" {
		opts.Order = "created_at ASC, id ASC"
	}
	return &rowRepo[T]{db: db, opts: opts}
}

// scoped returns a context-bound session with the repository scope applied.
func (r *rowRepo[T]) scoped(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.opts.Scope != nil {
		db = db.Scopes(r.opts.Scope)
	}
	return db
}

func (r *rowRepo[T]) Create(ctx context.Context, item *T) error {
	return errors.Wrapf(r.db.WithContext(ctx).Create(item).Error, "create %T", item)
}

func (r *rowRepo[T]) FindAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error) {
	page, err := pagination.Paginate[T](r.scoped(ctx).Model(new(T)), params, r.opts.Order)
	return page, errors.Wrapf(err, "list %T", new(T))
}

func (r *rowRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	err := applyPreloads(r.scoped(ctx), r.opts.Preloads).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, errors.Wrapf(err, "find %T %s", item, id)
	}
	return &item, nil
}

func (r *rowRepo[T]) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*T, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return existing, nil
	}
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, errors.Wrapf(err, "update %T %s", existing, id)
	}
	return r.FindByID(ctx, id)
}

// Delete removes the row for good and returns what was removed.
func (r *rowRepo[T]) Delete(ctx context.Context, id uuid.UUID) (*T, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error; err != nil {
		return nil, errors.Wrapf(err, "delete %T %s", existing, id)
	}
	return existing, nil
}
