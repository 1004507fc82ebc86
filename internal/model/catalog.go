package model

import "github.com/google/uuid"

type Chain struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"type:varchar(1024)" json:"logoUrl"`
	IsActive    bool   `gorm:"not null;default:true" json:"isActive"`
}

type Restaurant struct {
	BaseModel
	ChainID  uuid.UUID `gorm:"type:uuid;not null;index" json:"chainId"`
	Chain    *Chain    `json:"chain,omitempty"`
	Name     string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Address  string    `gorm:"type:varchar(500)" json:"address"`
	Phone    string    `gorm:"type:varchar(30)" json:"phone"`
	IsActive bool      `gorm:"not null;default:true" json:"isActive"`
}

type Category struct {
	BaseModel
	RestaurantID *uuid.UUID `gorm:"type:uuid;index" json:"restaurantId"`
	Name         string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Description  string     `gorm:"type:text" json:"description"`
	Position     int        `gorm:"not null;default:0" json:"position"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
}

type Tag struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null;index" json:"name"`
	Color    string `gorm:"type:varchar(20)" json:"color"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
}

type Ingredient struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null;index" json:"name"`
	Unit     string `gorm:"type:varchar(20)" json:"unit"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
}

// Translation holds one localized field of any catalog entity. Hard-deleted.
type Translation struct {
	RowModel
	EntityType string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_translation_key" json:"entityType"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_translation_key" json:"entityId"`
	Language   string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_translation_key" json:"language"`
	Field      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_translation_key" json:"field"`
	Value      string    `gorm:"type:text;not null" json:"value"`
}
