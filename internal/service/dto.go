package service

import (
	"go-catalog-ms/internal/model"
	"go-catalog-ms/pkg/rpcerr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func updatedBy(m map[string]interface{}, actor string) map[string]interface{} {
	if actor != "" {
		m["updated_by"] = actor
	}
	return m
}

// --- Chain ---

type CreateChainRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl" validate:"omitempty,url"`
	CreatedBy   string `json:"createdBy"`
}

func (r CreateChainRequest) ToModel() *model.Chain {
	return &model.Chain{
		BaseModel:   model.BaseModel{CreatedBy: r.CreatedBy, UpdatedBy: r.CreatedBy},
		Name:        r.Name,
		Description: r.Description,
		LogoURL:     r.LogoURL,
		IsActive:    true,
	}
}

type UpdateChainRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logoUrl" validate:"omitempty,url"`
	IsActive    *bool   `json:"isActive"`
	UpdatedBy   string  `json:"updatedBy"`
}

func (r UpdateChainRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "name", r.Name)
	set(m, "description", r.Description)
	set(m, "logo_url", r.LogoURL)
	set(m, "is_active", r.IsActive)
	return updatedBy(m, r.UpdatedBy)
}

// --- Restaurant ---

type CreateRestaurantRequest struct {
	ChainID   uuid.UUID `json:"chainId" validate:"uuid_required"`
	Name      string    `json:"name" validate:"required,max=255"`
	Address   string    `json:"address" validate:"max=500"`
	Phone     string    `json:"phone" validate:"max=30"`
	CreatedBy string    `json:"createdBy"`
}

func (r CreateRestaurantRequest) ToModel() *model.Restaurant {
	return &model.Restaurant{
		BaseModel: model.BaseModel{CreatedBy: r.CreatedBy, UpdatedBy: r.CreatedBy},
		ChainID:   r.ChainID,
		Name:      r.Name,
		Address:   r.Address,
		Phone:     r.Phone,
		IsActive:  true,
	}
}

type UpdateRestaurantRequest struct {
	ChainID   *uuid.UUID `json:"chainId"`
	Name      *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Address   *string    `json:"address" validate:"omitempty,max=500"`
	Phone     *string    `json:"phone" validate:"omitempty,max=30"`
	IsActive  *bool      `json:"isActive"`
	UpdatedBy string     `json:"updatedBy"`
}

func (r UpdateRestaurantRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "chain_id", r.ChainID)
	set(m, "name", r.Name)
	set(m, "address", r.Address)
	set(m, "phone", r.Phone)
	set(m, "is_active", r.IsActive)
	return updatedBy(m, r.UpdatedBy)
}

// --- Category ---

type CreateCategoryRequest struct {
	RestaurantID *uuid.UUID `json:"restaurantId"`
	Name         string     `json:"name" validate:"required,max=255"`
	Description  string     `json:"description"`
	Position     int        `json:"position" validate:"min=0"`
	CreatedBy    string     `json:"createdBy"`
}

func (r CreateCategoryRequest) ToModel() *model.Category {
	return &model.Category{
		BaseModel:    model.BaseModel{CreatedBy: r.CreatedBy, UpdatedBy: r.CreatedBy},
		RestaurantID: r.RestaurantID,
		Name:         r.Name,
		Description:  r.Description,
		Position:     r.Position,
		IsActive:     true,
	}
}

type UpdateCategoryRequest struct {
	RestaurantID *uuid.UUID `json:"restaurantId"`
	Name         *string    `json:"name" validate:"omitempty,min=1,max=255"`
	Description  *string    `json:"description"`
	Position     *int       `json:"position" validate:"omitempty,min=0"`
	IsActive     *bool      `json:"isActive"`
	UpdatedBy    string     `json:"updatedBy"`
}

func (r UpdateCategoryRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "restaurant_id", r.RestaurantID)
	set(m, "name", r.Name)
	set(m, "description", r.Description)
	set(m, "position", r.Position)
	set(m, "is_active", r.IsActive)
	return updatedBy(m, r.UpdatedBy)
}

// --- Tag ---

type CreateTagRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	Color     string `json:"color" validate:"omitempty,hexcolor"`
	CreatedBy string `json:"createdBy"`
}

func (r CreateTagRequest) ToModel() *model.Tag {
	return &model.Tag{
		BaseModel: model.BaseModel{CreatedBy: r.CreatedBy, UpdatedBy: r.CreatedBy},
		Name:      r.Name,
		Color:     r.Color,
		IsActive:  true,
	}
}

type UpdateTagRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Color     *string `json:"color" validate:"omitempty,hexcolor"`
	IsActive  *bool   `json:"isActive"`
	UpdatedBy string  `json:"updatedBy"`
}

func (r UpdateTagRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "name", r.Name)
	set(m, "color", r.Color)
	set(m, "is_active", r.IsActive)
	return updatedBy(m, r.UpdatedBy)
}

// --- Ingredient ---

type CreateIngredientRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Unit      string `json:"unit" validate:"max=20"`
	CreatedBy string `json:"createdBy"`
}

func (r CreateIngredientRequest) ToModel() *model.Ingredient {
	return &model.Ingredient{
		BaseModel: model.BaseModel{CreatedBy: r.CreatedBy, UpdatedBy: r.CreatedBy},
		Name:      r.Name,
		Unit:      r.Unit,
		IsActive:  true,
	}
}

type UpdateIngredientRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Unit      *string `json:"unit" validate:"omitempty,max=20"`
	IsActive  *bool   `json:"isActive"`
	UpdatedBy string  `json:"updatedBy"`
}

func (r UpdateIngredientRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "name", r.Name)
	set(m, "unit", r.Unit)
	set(m, "is_active", r.IsActive)
	return updatedBy(m, r.UpdatedBy)
}

// --- Question ---

type CreateQuestionRequest struct {
	Name      string             `json:"name" validate:"required,max=255"`
	Required  bool               `json:"required"`
	Min       *int               `json:"min"`
	Max       *int               `json:"max"`
	Type      model.QuestionType `json:"type" validate:"required,oneof=SINGLE_CHOICE MULTIPLE_CHOICE TEXT NUMBER BOOLEAN"`
	CreatedBy string             `json:"createdBy"`
}

func (r CreateQuestionRequest) Check() error {
	return checkBounds(r.Min, r.Max)
}

func (r CreateQuestionRequest) ToModel() *model.Question {
	return &model.Question{
		BaseModel: model.BaseModel{CreatedBy: r.CreatedBy, UpdatedBy: r.CreatedBy},
		Name:      r.Name,
		Required:  r.Required,
		Min:       r.Min,
		Max:       r.Max,
		Type:      r.Type,
		IsActive:  true,
	}
}

type UpdateQuestionRequest struct {
	Name      *string             `json:"name" validate:"omitempty,min=1,max=255"`
	Required  *bool               `json:"required"`
	Min       *int                `json:"min"`
	Max       *int                `json:"max"`
	Type      *model.QuestionType `json:"type" validate:"omitempty,oneof=SINGLE_CHOICE MULTIPLE_CHOICE TEXT NUMBER BOOLEAN"`
	IsActive  *bool               `json:"isActive"`
	UpdatedBy string              `json:"updatedBy"`
}

func (r UpdateQuestionRequest) Check() error {
	return checkBounds(r.Min, r.Max)
}

func (r UpdateQuestionRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "name", r.Name)
	set(m, "required", r.Required)
	set(m, "min", r.Min)
	set(m, "max", r.Max)
	set(m, "type", r.Type)
	set(m, "is_active", r.IsActive)
	return updatedBy(m, r.UpdatedBy)
}

func checkBounds(min, max *int) error {
	if min != nil && max != nil && *min > *max {
		return rpcerr.BadRequest("min (%d) must not be greater than max (%d)", *min, *max)
	}
	return nil
}

// --- Product ---

type CreateProductRequest struct {
	SKU          string              `json:"sku" validate:"required,max=50"`
	Name         string              `json:"name" validate:"required,max=255"`
	Description  string              `json:"description"`
	BasePrice    decimal.Decimal     `json:"basePrice"`
	Status       model.ProductStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE OUT_OF_STOCK"`
	CategoryID   *uuid.UUID          `json:"categoryId"`
	RestaurantID *uuid.UUID          `json:"restaurantId"`
	CreatedBy    string              `json:"createdBy"`
}

func (r CreateProductRequest) Check() error {
	if r.BasePrice.IsNegative() {
		return rpcerr.BadRequest("basePrice must not be negative")
	}
	return nil
}

func (r CreateProductRequest) ToModel() *model.Product {
	status := r.Status
	if status == "" {
		status = model.ProductActive
	}
	return &model.Product{
		BaseModel:    model.BaseModel{CreatedBy: r.CreatedBy, UpdatedBy: r.CreatedBy},
		SKU:          r.SKU,
		Name:         r.Name,
		Description:  r.Description,
		BasePrice:    r.BasePrice,
		Status:       status,
		CategoryID:   r.CategoryID,
		RestaurantID: r.RestaurantID,
	}
}

type UpdateProductRequest struct {
	SKU          *string              `json:"sku" validate:"omitempty,min=1,max=50"`
	Name         *string              `json:"name" validate:"omitempty,min=1,max=255"`
	Description  *string              `json:"description"`
	BasePrice    *decimal.Decimal     `json:"basePrice"`
	Status       *model.ProductStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE OUT_OF_STOCK"`
	CategoryID   *uuid.UUID           `json:"categoryId"`
	RestaurantID *uuid.UUID           `json:"restaurantId"`
	UpdatedBy    string               `json:"updatedBy"`
}

func (r UpdateProductRequest) Check() error {
	if r.BasePrice != nil && r.BasePrice.IsNegative() {
		return rpcerr.BadRequest("basePrice must not be negative")
	}
	return nil
}

func (r UpdateProductRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "sku", r.SKU)
	set(m, "name", r.Name)
	set(m, "description", r.Description)
	set(m, "base_price", r.BasePrice)
	set(m, "status", r.Status)
	set(m, "category_id", r.CategoryID)
	set(m, "restaurant_id", r.RestaurantID)
	return updatedBy(m, r.UpdatedBy)
}

type ValidateProductsRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// --- Translation ---

type CreateTranslationRequest struct {
	EntityType string    `json:"entityType" validate:"required,max=50"`
	EntityID   uuid.UUID `json:"entityId" validate:"uuid_required"`
	Language   string    `json:"language" validate:"required,max=10"`
	Field      string    `json:"field" validate:"required,max=50"`
	Value      string    `json:"value" validate:"required"`
}

func (r CreateTranslationRequest) ToModel() *model.Translation {
	return &model.Translation{
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Language:   r.Language,
		Field:      r.Field,
		Value:      r.Value,
	}
}

type UpdateTranslationRequest struct {
	Language *string `json:"language" validate:"omitempty,min=1,max=10"`
	Field    *string `json:"field" validate:"omitempty,min=1,max=50"`
	Value    *string `json:"value" validate:"omitempty,min=1"`
}

func (r UpdateTranslationRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "language", r.Language)
	set(m, "field", r.Field)
	set(m, "value", r.Value)
	return m
}
