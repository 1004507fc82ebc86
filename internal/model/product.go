package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive     ProductStatus = "ACTIVE"
	ProductInactive   ProductStatus = "INACTIVE"
	ProductOutOfStock ProductStatus = "OUT_OF_STOCK"
)

type Product struct {
	BaseModel
	SKU          string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	Name         string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	BasePrice    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"basePrice"`
	Status       ProductStatus   `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index" json:"categoryId"`
	RestaurantID *uuid.UUID      `gorm:"type:uuid;index" json:"restaurantId"`

	// Relasi
	Sizes     []ProductSize     `json:"sizes,omitempty"`
	Images    []ProductImage    `json:"images,omitempty"`
	Schedules []ProductSchedule `json:"schedules,omitempty"`
	Recipes   []ProductRecipe   `json:"recipes,omitempty"`
	Tags      []ProductTag      `json:"tags,omitempty"`
}

// ProductTree is a product with its question/answer options expanded.
type ProductTree struct {
	Product
	Questions []QuestionNode `json:"questions"`
}

// QuestionNode is a question asked about a product, with the products that answer it.
type QuestionNode struct {
	Question
	Answers []ProductTree `json:"answers"`
}
