package service

import (
	"context"

	"go-catalog-ms/internal/model"
	"go-catalog-ms/internal/repository"
	"go-catalog-ms/pkg/pagination"

	"github.com/google/uuid"
)

type FindTranslationsRequest struct {
	EntityType string    `json:"entityType" validate:"required"`
	EntityID   uuid.UUID `json:"entityId" validate:"uuid_required"`
	Language   string    `json:"language"`
}

type TranslationService interface {
	Create(ctx context.Context, req CreateTranslationRequest) (*model.Translation, error)
	FindAll(ctx context.Context, params pagination.Params) (*pagination.Page[model.Translation], error)
	FindOne(ctx context.Context, id uuid.UUID) (*model.Translation, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateTranslationRequest) (*model.Translation, error)
	// Remove deletes the row for good.
	Remove(ctx context.Context, id uuid.UUID) (*model.Translation, error)
	FindByEntity(ctx context.Context, req FindTranslationsRequest) ([]model.Translation, error)
}

type translationService struct {
	repo repository.TranslationRepository
}

func NewTranslationService(repo repository.TranslationRepository) TranslationService {
	return &translationService{repo: repo}
}

func (s *translationService) Create(ctx context.Context, req CreateTranslationRequest) (*model.Translation, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	translation := req.ToModel()
	if err := s.repo.Create(ctx, translation); err != nil {
		return nil, err
	}
	return translation, nil
}

func (s *translationService) FindAll(ctx context.Context, params pagination.Params) (*pagination.Page[model.Translation], error) {
	return s.repo.FindAll(ctx, params)
}

func (s *translationService) FindOne(ctx context.Context, id uuid.UUID) (*model.Translation, error) {
	translation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Translation", id)
	}
	return translation, nil
}

func (s *translationService) Update(ctx context.Context, id uuid.UUID, req UpdateTranslationRequest) (*model.Translation, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	translation, err := s.repo.Update(ctx, id, req.Updates())
	if err != nil {
		return nil, notFound(err, "Translation", id)
	}
	return translation, nil
}

func (s *translationService) Remove(ctx context.Context, id uuid.UUID) (*model.Translation, error) {
	translation, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err, "Translation", id)
	}
	return translation, nil
}

func (s *translationService) FindByEntity(ctx context.Context, req FindTranslationsRequest) ([]model.Translation, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	translations, err := s.repo.FindByEntity(ctx, req.EntityType, req.EntityID, req.Language)
	if err != nil {
		return nil, err
	}
	if translations == nil {
		translations = []model.Translation{}
	}
	return translations, nil
}
