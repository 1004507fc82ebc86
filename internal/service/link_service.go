package service

import (
	"context"

	"go-catalog-ms/internal/model"
	"go-catalog-ms/internal/repository"
	"go-catalog-ms/pkg/pagination"
	"go-catalog-ms/pkg/rpcerr"

	"github.com/google/uuid"
)

// LinkService serves one kind of row owned by a product.
type LinkService[T any, I ProductItem[T], U Patch] interface {
	Create(ctx context.Context, productID uuid.UUID, item I) (*T, error)
	FindAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error)
	FindOne(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, id uuid.UUID, req U) (*T, error)
	Remove(ctx context.Context, id uuid.UUID) (*T, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]T, error)
	RemoveByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
	BulkCreate(ctx context.Context, productID uuid.UUID, items []I) ([]T, error)
	ReplaceByProductID(ctx context.Context, productID uuid.UUID, items []I) ([]T, error)
}

type linkService[T any, I ProductItem[T], U Patch] struct {
	entity   string
	repo     repository.LinkRepository[T]
	products repository.CrudRepository[model.Product]
	opts     options
}

func NewLinkService[T any, I ProductItem[T], U Patch](entity string, repo repository.LinkRepository[T], products repository.CrudRepository[model.Product], opts ...Option) LinkService[T, I, U] {
	return &linkService[T, I, U]{entity: entity, repo: repo, products: products, opts: newOptions(opts)}
}

func (s *linkService[T, I, U]) ensureProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return rpcerr.BadRequest("Validation failed: Field 'productId' failed on tag 'uuid_required'")
	}
	ok, err := s.products.Exists(ctx, productID)
	if err != nil {
		return err
	}
	if !ok {
		return rpcerr.NotFound("Product with id %s not found", productID)
	}
	return nil
}

// build validates every item and turns it into a row of productID.
func (s *linkService[T, I, U]) build(productID uuid.UUID, items []I) ([]T, error) {
	rows := make([]T, 0, len(items))
	for _, item := range items {
		if err := validate(item); err != nil {
			return nil, err
		}
		rows = append(rows, *item.ToModel(productID))
	}
	return rows, nil
}

func (s *linkService[T, I, U]) Create(ctx context.Context, productID uuid.UUID, item I) (*T, error) {
	if err := validate(item); err != nil {
		return nil, err
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	row := item.ToModel(productID)
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}

	s.opts.created(row)
	s.opts.changed(ctx)
	return row, nil
}

func (s *linkService[T, I, U]) FindAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error) {
	return s.repo.FindAll(ctx, params)
}

func (s *linkService[T, I, U]) FindOne(ctx context.Context, id uuid.UUID) (*T, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, s.entity, id)
	}
	return row, nil
}

func (s *linkService[T, I, U]) Update(ctx context.Context, id uuid.UUID, req U) (*T, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	row, err := s.repo.Update(ctx, id, req.Updates())
	if err != nil {
		return nil, notFound(err, s.entity, id)
	}
	s.opts.changed(ctx)
	return row, nil
}

func (s *linkService[T, I, U]) Remove(ctx context.Context, id uuid.UUID) (*T, error) {
	row, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err, s.entity, id)
	}
	s.opts.changed(ctx)
	return row, nil
}

func (s *linkService[T, I, U]) FindByProductID(ctx context.Context, productID uuid.UUID) ([]T, error) {
	rows, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func (s *linkService[T, I, U]) RemoveByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	count, err := s.repo.RemoveByProductID(ctx, productID)
	if err != nil {
		return 0, err
	}
	s.opts.changed(ctx)
	return count, nil
}

func (s *linkService[T, I, U]) BulkCreate(ctx context.Context, productID uuid.UUID, items []I) ([]T, error) {
	rows, err := s.build(productID, items)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	created, err := s.repo.BulkCreate(ctx, rows)
	if err != nil {
		return nil, err
	}

	for i := range created {
		s.opts.created(&created[i])
	}
	s.opts.changed(ctx)
	return created, nil
}

func (s *linkService[T, I, U]) ReplaceByProductID(ctx context.Context, productID uuid.UUID, items []I) ([]T, error) {
	rows, err := s.build(productID, items)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	replaced, err := s.repo.ReplaceByProductID(ctx, productID, rows)
	if err != nil {
		return nil, err
	}
	s.opts.changed(ctx)
	return replaced, nil
}
