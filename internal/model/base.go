package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID), audit trail and soft delete.
// The gorm.DeletedAt field gives every query on embedding models the
// "deleted_at IS NULL" default scope.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`

	// Audit User Tracking
	CreatedBy string `gorm:"type:varchar(255)" json:"createdBy"`
	UpdatedBy string `gorm:"type:varchar(255)" json:"updatedBy"`
	DeletedBy string `gorm:"type:varchar(255)" json:"deletedBy"`
}

func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// RowModel is for rows that are physically deleted: product relations and translations.
type RowModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (row *RowModel) BeforeCreate(tx *gorm.DB) (err error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return
}

// All lists every table for AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&Chain{}, &Restaurant{}, &Category{},
		&Tag{}, &Ingredient{}, &Question{},
		&Product{},
		&ProductSize{}, &ProductImage{}, &ProductSchedule{}, &ProductRecipe{}, &ProductTag{},
		&QuestionProduct{},
		&Translation{},
	}
}

func (base BaseModel) EntityID() uuid.UUID {
	return base.ID
}

func (row RowModel) EntityID() uuid.UUID {
	return row.ID
}
