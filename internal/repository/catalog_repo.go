package repository

import (
	"context"

	"go-catalog-ms/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// deactivate is the soft-delete side effect of entities with an is_active flag.
func deactivate() map[string]interface{} {
	return map[string]interface{}{"is_active": false}
}

func NewChainRepo(db *gorm.DB) CrudRepository[model.Chain] {
	return NewCrudRepo[model.Chain](db, CrudOptions{OnRemove: deactivate})
}

func NewRestaurantRepo(db *gorm.DB) CrudRepository[model.Restaurant] {
	return NewCrudRepo[model.Restaurant](db, CrudOptions{
		Preloads: []Preload{{Relation: "Chain"}},
		OnRemove: deactivate,
	})
}

func NewCategoryRepo(db *gorm.DB) CrudRepository[model.Category] {
	return NewCrudRepo[model.Category](db, CrudOptions{OnRemove: deactivate})
}

func NewTagRepo(db *gorm.DB) CrudRepository[model.Tag] {
	return NewCrudRepo[model.Tag](db, CrudOptions{OnRemove: deactivate})
}

func NewIngredientRepo(db *gorm.DB) CrudRepository[model.Ingredient] {
	return NewCrudRepo[model.Ingredient](db, CrudOptions{OnRemove: deactivate})
}

func NewQuestionRepo(db *gorm.DB) CrudRepository[model.Question] {
	return NewCrudRepo[model.Question](db, CrudOptions{OnRemove: deactivate})
}

type ProductRepository interface {
	CrudRepository[model.Product]
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	// IDs lists every non-deleted product id.
	IDs(ctx context.Context) ([]uuid.UUID, error)
}

type productRepo struct {
	CrudRepository[model.Product]
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{
		CrudRepository: NewCrudRepo[model.Product](db, CrudOptions{
			Preloads: []Preload{
				{Relation: "Sizes", Order: "created_at ASC"},
				{Relation: "Images", Order: "position ASC"},
				{Relation: "Schedules", Order: "day_of_week ASC, start_time ASC"},
				{Relation: "Recipes", Order: "created_at ASC"},
				{Relation: "Recipes.Ingredient"},
				{Relation: "Tags", Order: "created_at ASC"},
				{Relation: "Tags.Tag"},
			},
			OnRemove: func() map[string]interface{} {
				return map[string]interface{}{"status": model.ProductInactive}
			},
		}),
		db: db,
	}
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error
	if err != nil {
		return nil, errors.Wrapf(err, "find product by sku %s", sku)
	}
	return &product, nil
}

func (r *productRepo) IDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Product{}).Order("name ASC, id ASC").Pluck("id", &ids).Error
	return ids, errors.Wrap(err, "list product ids")
}

func NewProductSizeRepo(db *gorm.DB) LinkRepository[model.ProductSize] {
	return NewLinkRepo[model.ProductSize](db, RowOptions{})
}

func NewProductImageRepo(db *gorm.DB) LinkRepository[model.ProductImage] {
	return NewLinkRepo[model.ProductImage](db, RowOptions{Order: "position ASC, id ASC"})
}

func NewProductScheduleRepo(db *gorm.DB) LinkRepository[model.ProductSchedule] {
	return NewLinkRepo[model.ProductSchedule](db, RowOptions{Order: "day_of_week ASC, start_time ASC, id ASC"})
}

func NewProductRecipeRepo(db *gorm.DB) LinkRepository[model.ProductRecipe] {
	return NewLinkRepo[model.ProductRecipe](db, RowOptions{
		Preloads: []Preload{{Relation: "Ingredient"}},
	})
}

func NewProductTagRepo(db *gorm.DB) LinkRepository[model.ProductTag] {
	return NewLinkRepo[model.ProductTag](db, RowOptions{
		Preloads: []Preload{{Relation: "Tag"}},
	})
}
