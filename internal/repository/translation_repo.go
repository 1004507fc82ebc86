package repository

import (
	"context"

	"go-catalog-ms/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type TranslationRepository interface {
	RowRepository[model.Translation]
	// FindByEntity returns an entity's translations, all languages when language is empty.
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, language string) ([]model.Translation, error)
}

type translationRepo struct {
	RowRepository[model.Translation]
	db *gorm.DB
}

func NewTranslationRepo(db *gorm.DB) TranslationRepository {
	return &translationRepo{
		RowRepository: NewRowRepo[model.Translation](db, RowOptions{Order: "entity_type ASC, language ASC, field ASC, id ASC"}),
		db:            db,
	}
}

func (r *translationRepo) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, language string) ([]model.Translation, error) {
	var translations []model.Translation
	q := r.db.WithContext(ctx).Where("entity_type = ? AND entity_id = ?", entityType, entityID)
	if language != "" {
		q = q.Where("language = ?", language)
	}
	err := q.Order("language ASC, field ASC").Find(&translations).Error
	return translations, errors.Wrapf(err, "find translations of %s %s", entityType, entityID)
}
