package service

import (
	"context"

	"go-catalog-ms/internal/repository"
	"go-catalog-ms/pkg/pagination"

	"github.com/google/uuid"
)

// CatalogService is the CRUD contract shared by every soft-deletable entity.
type CatalogService[T any, C Creatable[T], U Patch] interface {
	Create(ctx context.Context, req C) (*T, error)
	FindAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error)
	FindOne(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, id uuid.UUID, req U) (*T, error)
	Remove(ctx context.Context, id uuid.UUID, deletedBy string) (*T, error)
	Search(ctx context.Context, name string, params pagination.Params) (*pagination.Page[T], error)
}

type catalogService[T any, C Creatable[T], U Patch] struct {
	entity string
	repo   repository.CrudRepository[T]
	opts   options
}

func NewCatalogService[T any, C Creatable[T], U Patch](entity string, repo repository.CrudRepository[T], opts ...Option) CatalogService[T, C, U] {
	return newCatalogService[T, C, U](entity, repo, opts...)
}

func newCatalogService[T any, C Creatable[T], U Patch](entity string, repo repository.CrudRepository[T], opts ...Option) *catalogService[T, C, U] {
	return &catalogService[T, C, U]{entity: entity, repo: repo, opts: newOptions(opts)}
}

func (s *catalogService[T, C, U]) Create(ctx context.Context, req C) (*T, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	item := req.ToModel()
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.opts.created(item)
	return item, nil
}

func (s *catalogService[T, C, U]) FindAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error) {
	return s.repo.FindAll(ctx, params)
}

func (s *catalogService[T, C, U]) FindOne(ctx context.Context, id uuid.UUID) (*T, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, s.entity, id)
	}
	return item, nil
}

func (s *catalogService[T, C, U]) Update(ctx context.Context, id uuid.UUID, req U) (*T, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	item, err := s.repo.Update(ctx, id, req.Updates())
	if err != nil {
		return nil, notFound(err, s.entity, id)
	}

	s.opts.changed(ctx)
	return item, nil
}

func (s *catalogService[T, C, U]) Remove(ctx context.Context, id uuid.UUID, deletedBy string) (*T, error) {
	item, err := s.repo.SoftDelete(ctx, id, deletedBy)
	if err != nil {
		return nil, notFound(err, s.entity, id)
	}

	s.opts.changed(ctx)
	return item, nil
}

func (s *catalogService[T, C, U]) Search(ctx context.Context, name string, params pagination.Params) (*pagination.Page[T], error) {
	return s.repo.SearchByName(ctx, name, params)
}
