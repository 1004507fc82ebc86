package repository

import (
	"context"
	"strings"
	"time"

	"go-catalog-ms/pkg/pagination"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Preload names a relation to load, optionally ordered.
type Preload struct {
	Relation string
	Order    string
}

func applyPreloads(db *gorm.DB, preloads []Preload) *gorm.DB {
	for _, p := range preloads {
		if p.Order == "" {
			db = db.Preload(p.Relation)
			continue
		}
		order := p.Order
		db = db.Preload(p.Relation, func(tx *gorm.DB) *gorm.DB {
			return tx.Order(order)
		})
	}
	return db
}

// likePattern builds a substring pattern with LIKE wildcards escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

type CrudOptions struct {
	// Order for list and search, "name ASC, id ASC" when empty.
	Order    string
	Preloads []Preload
	// OnRemove returns the extra columns a soft delete sets (is_active, status).
	OnRemove func() map[string]interface{}
}

// CrudRepository serves a soft-deletable model. Rows with deleted_at set are
// invisible to every read through the gorm.DeletedAt default scope.
type CrudRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	FindAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error)
	FindWhere(ctx context.Context, params pagination.Params, query interface{}, args ...interface{}) (*pagination.Page[T], error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]T, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	SearchByName(ctx context.Context, name string, params pagination.Params) (*pagination.Page[T], error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*T, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) (*T, error)
}

type crudRepo[T any] struct {
	db   *gorm.DB
	opts CrudOptions
}

func NewCrudRepo[T any](db *gorm.DB, opts CrudOptions) CrudRepository[T] {
	if opts.Order == "" {
		opts.Order = "name ASC, id ASC"
	}
	return &crudRepo[T]{db: db, opts: opts}
}

func (r *crudRepo[T]) Create(ctx context.Context, item *T) error {
	return errors.Wrapf(r.db.WithContext(ctx).Create(item).Error, "create %T", item)
}

func (r *crudRepo[T]) FindAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error) {
	page, err := pagination.Paginate[T](r.db.WithContext(ctx).Model(new(T)), params, r.opts.Order)
	return page, errors.Wrapf(err, "list %T", new(T))
}

func (r *crudRepo[T]) FindWhere(ctx context.Context, params pagination.Params, query interface{}, args ...interface{}) (*pagination.Page[T], error) {
	q := r.db.WithContext(ctx).Model(new(T)).Where(query, args...)
	page, err := pagination.Paginate[T](q, params, r.opts.Order)
	return page, errors.Wrapf(err, "list %T", new(T))
}

func (r *crudRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	err := applyPreloads(r.db.WithContext(ctx), r.opts.Preloads).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, errors.Wrapf(err, "find %T %s", item, id)
	}
	return &item, nil
}

func (r *crudRepo[T]) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]T, error) {
	var items []T
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, errors.Wrapf(err, "find %T by ids", items)
}

func (r *crudRepo[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error
	return count > 0, errors.Wrapf(err, "check %T %s", new(T), id)
}

func (r *crudRepo[T]) SearchByName(ctx context.Context, name string, params pagination.Params) (*pagination.Page[T], error) {
	q := r.db.WithContext(ctx).Model(new(T)).Where("name ILIKE ?", likePattern(name))
	page, err := pagination.Paginate[T](q, params, r.opts.Order)
	return page, errors.Wrapf(err, "search %T", new(T))
}

// Update applies a partial patch. It returns gorm.ErrRecordNotFound before
// writing anything when the row is missing or soft-deleted.
func (r *crudRepo[T]) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*T, error) {
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

// SoftDelete stamps deleted_at/deleted_by and returns the row as it now is.
func (r *crudRepo[T]) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) (*T, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"deleted_at": time.Now(),
		"deleted_by": deletedBy,
	}
	if r.opts.OnRemove != nil {
		for k, v := range r.opts.OnRemove() {
			updates[k] = v
		}
	}

	db := r.db.WithContext(ctx)
	if err := db.Model(new(T)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, errors.Wrapf(err, "remove %T %s", new(T), id)
	}

	var removed T
	if err := db.Unscoped().First(&removed, "id = ?", id).Error; err != nil {
		return nil, errors.Wrapf(err, "reload %T %s", removed, id)
	}
	return &removed, nil
}
