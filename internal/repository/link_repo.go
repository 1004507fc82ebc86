package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LinkRepository serves rows owned by a product (sizes, images, schedules,
// recipes, tag links, question links).
type LinkRepository[T any] interface {
	RowRepository[T]
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]T, error)
	RemoveByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
	BulkCreate(ctx context.Context, items []T) ([]T, error)
	// ReplaceByProductID deletes the product's rows and inserts items in one
	// transaction; on failure the previous rows stay.
	ReplaceByProductID(ctx context.Context, productID uuid.UUID, items []T) ([]T, error)
}

type linkRepo[T any] struct {
	*rowRepo[T]
}

func NewLinkRepo[T any](db *gorm.DB, opts RowOptions) LinkRepository[T] {
	return &linkRepo[T]{rowRepo: newRowRepo[T](db, opts)}
}

func (r *linkRepo[T]) FindByProductID(ctx context.Context, productID uuid.UUID) ([]T, error) {
	var items []T
	err := applyPreloads(r.scoped(ctx), r.opts.Preloads).
		Where("product_id = ?", productID).
		Order(r.opts.Order).
		Find(&items).Error
	return items, errors.Wrapf(err, "find %T by product %s", items, productID)
}

func (r *linkRepo[T]) RemoveByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	res := r.scoped(ctx).Where("product_id = ?", productID).Delete(new(T))
	return res.RowsAffected, errors.Wrapf(res.Error, "delete %T by product %s", new(T), productID)
}

func (r *linkRepo[T]) BulkCreate(ctx context.Context, items []T) ([]T, error) {
	if len(items) == 0 {
		return []T{}, nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, errors.Wrapf(err, "bulk create %T", items)
	}
	return items, nil
}

func (r *linkRepo[T]) ReplaceByProductID(ctx context.Context, productID uuid.UUID, items []T) ([]T, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		del := tx
		if r.opts.Scope != nil {
			del = del.Scopes(r.opts.Scope)
		}
		if err := del.Where("product_id = ?", productID).Delete(new(T)).Error; err != nil {
			return errors.Wrapf(err, "clear %T of product %s", new(T), productID)
		}
		if len(items) == 0 {
			return nil
		}
		return errors.Wrapf(tx.Create(&items).Error, "insert %T", items)
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
