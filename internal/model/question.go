package model

import "github.com/google/uuid"

type QuestionType string

const (
	QuestionSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionText           QuestionType = "TEXT"
	QuestionNumber         QuestionType = "NUMBER"
	QuestionBoolean        QuestionType = "BOOLEAN"
)

type Question struct {
	BaseModel
	Name     string       `gorm:"type:varchar(255);not null;index" json:"name"`
	Required bool         `gorm:"not null;default:false" json:"required"`
	Min      *int         `json:"min"`
	Max      *int         `json:"max"`
	Type     QuestionType `gorm:"type:varchar(20);not null" json:"type"`
	IsActive bool         `gorm:"not null;default:true" json:"isActive"`
}

type ItemType string

const (
	// ItemQuestion: the question is asked about ProductID.
	ItemQuestion ItemType = "QUESTION"
	// ItemAnswer: ProductID is one of the options of QuestionID.
	ItemAnswer ItemType = "ANSWER"
)

// QuestionProduct is the typed edge between products and questions.
type QuestionProduct struct {
	RowModel
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index" json:"questionId"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	ItemType   ItemType  `gorm:"type:varchar(10);not null;index" json:"itemType"`

	Question *Question `json:"question,omitempty"`
	Product  *Product  `json:"product,omitempty"`
}
