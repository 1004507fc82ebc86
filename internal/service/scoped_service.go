package service

import (
	"context"

	"go-catalog-ms/internal/model"
	"go-catalog-ms/internal/repository"
	"go-catalog-ms/pkg/pagination"

	"github.com/google/uuid"
)

type RestaurantService interface {
	CatalogService[model.Restaurant, CreateRestaurantRequest, UpdateRestaurantRequest]
	FindByChain(ctx context.Context, chainID uuid.UUID, params pagination.Params) (*pagination.Page[model.Restaurant], error)
}

type restaurantService struct {
	*catalogService[model.Restaurant, CreateRestaurantRequest, UpdateRestaurantRequest]
}

func NewRestaurantService(repo repository.CrudRepository[model.Restaurant]) RestaurantService {
	return &restaurantService{
		catalogService: newCatalogService[model.Restaurant, CreateRestaurantRequest, UpdateRestaurantRequest]("Restaurant", repo),
	}
}

func (s *restaurantService) FindByChain(ctx context.Context, chainID uuid.UUID, params pagination.Params) (*pagination.Page[model.Restaurant], error) {
	return s.repo.FindWhere(ctx, params, "chain_id = ?", chainID)
}

type CategoryService interface {
	CatalogService[model.Category, CreateCategoryRequest, UpdateCategoryRequest]
	FindByRestaurant(ctx context.Context, restaurantID uuid.UUID, params pagination.Params) (*pagination.Page[model.Category], error)
}

type categoryService struct {
	*catalogService[model.Category, CreateCategoryRequest, UpdateCategoryRequest]
}

func NewCategoryService(repo repository.CrudRepository[model.Category]) CategoryService {
	return &categoryService{
		catalogService: newCatalogService[model.Category, CreateCategoryRequest, UpdateCategoryRequest]("Category", repo),
	}
}

func (s *categoryService) FindByRestaurant(ctx context.Context, restaurantID uuid.UUID, params pagination.Params) (*pagination.Page[model.Category], error) {
	return s.repo.FindWhere(ctx, params, "restaurant_id = ?", restaurantID)
}

// Tags and ingredients are preloaded into product trees, so their writes drop cached trees.

func NewTagService(repo repository.CrudRepository[model.Tag], trees *TreeCache) CatalogService[model.Tag, CreateTagRequest, UpdateTagRequest] {
	return newCatalogService[model.Tag, CreateTagRequest, UpdateTagRequest]("Tag", repo, WithTreeInvalidation(trees))
}

func NewIngredientService(repo repository.CrudRepository[model.Ingredient], trees *TreeCache) CatalogService[model.Ingredient, CreateIngredientRequest, UpdateIngredientRequest] {
	return newCatalogService[model.Ingredient, CreateIngredientRequest, UpdateIngredientRequest]("Ingredient", repo, WithTreeInvalidation(trees))
}
