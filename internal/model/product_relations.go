package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductSize struct {
	RowModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	IsDefault bool            `gorm:"not null;default:false" json:"isDefault"`
}

type ProductImage struct {
	RowModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	URL       string    `gorm:"type:varchar(1024);not null" json:"url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	IsMain    bool      `gorm:"not null;default:false" json:"isMain"`
}

// ProductSchedule is a weekly availability window. Times are HH:MM;
// EndTime <= StartTime means the window runs past midnight.
type ProductSchedule struct {
	RowModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	DayOfWeek int       `gorm:"not null" json:"dayOfWeek"` // 0 = Sunday
	StartTime string    `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"endTime"`
}

type ProductRecipe struct {
	RowModel
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"productId"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index" json:"ingredientId"`
	Ingredient   *Ingredient     `json:"ingredient,omitempty"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
	Unit         string          `gorm:"type:varchar(20)" json:"unit"`
}

type ProductTag struct {
	RowModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_tag" json:"productId"`
	TagID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_tag" json:"tagId"`
	Tag       *Tag      `json:"tag,omitempty"`
}
