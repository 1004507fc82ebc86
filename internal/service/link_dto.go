package service

import (
	"go-catalog-ms/internal/model"
	"go-catalog-ms/pkg/rpcerr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Size ---

type SizeItem struct {
	Name      string          `json:"name" validate:"required,max=100"`
	Price     decimal.Decimal `json:"price"`
	IsDefault bool            `json:"isDefault"`
}

func (i SizeItem) Check() error {
	if i.Price.IsNegative() {
		return rpcerr.BadRequest("price must not be negative")
	}
	return nil
}

func (i SizeItem) ToModel(productID uuid.UUID) *model.ProductSize {
	return &model.ProductSize{ProductID: productID, Name: i.Name, Price: i.Price, IsDefault: i.IsDefault}
}

type UpdateSizeRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Price     *decimal.Decimal `json:"price"`
	IsDefault *bool            `json:"isDefault"`
}

func (r UpdateSizeRequest) Check() error {
	if r.Price != nil && r.Price.IsNegative() {
		return rpcerr.BadRequest("price must not be negative")
	}
	return nil
}

func (r UpdateSizeRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "name", r.Name)
	set(m, "price", r.Price)
	set(m, "is_default", r.IsDefault)
	return m
}

// --- Image ---

type ImageItem struct {
	URL      string `json:"url" validate:"required,url,max=1024"`
	Position int    `json:"position" validate:"min=0"`
	IsMain   bool   `json:"isMain"`
}

func (i ImageItem) ToModel(productID uuid.UUID) *model.ProductImage {
	return &model.ProductImage{ProductID: productID, URL: i.URL, Position: i.Position, IsMain: i.IsMain}
}

type UpdateImageRequest struct {
	URL      *string `json:"url" validate:"omitempty,url,max=1024"`
	Position *int    `json:"position" validate:"omitempty,min=0"`
	IsMain   *bool   `json:"isMain"`
}

func (r UpdateImageRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "url", r.URL)
	set(m, "position", r.Position)
	set(m, "is_main", r.IsMain)
	return m
}

// --- Schedule ---

type ScheduleItem struct {
	DayOfWeek int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
}

func (i ScheduleItem) ToModel(productID uuid.UUID) *model.ProductSchedule {
	return &model.ProductSchedule{ProductID: productID, DayOfWeek: i.DayOfWeek, StartTime: i.StartTime, EndTime: i.EndTime}
}

type UpdateScheduleRequest struct {
	DayOfWeek *int    `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	StartTime *string `json:"startTime" validate:"omitempty,clock"`
	EndTime   *string `json:"endTime" validate:"omitempty,clock"`
}

func (r UpdateScheduleRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "day_of_week", r.DayOfWeek)
	set(m, "start_time", r.StartTime)
	set(m, "end_time", r.EndTime)
	return m
}

// --- Recipe ---

type RecipeItem struct {
	IngredientID uuid.UUID       `json:"ingredientId" validate:"uuid_required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"max=20"`
}

func (i RecipeItem) Check() error {
	if !i.Quantity.IsPositive() {
		return rpcerr.BadRequest("quantity must be greater than zero")
	}
	return nil
}

func (i RecipeItem) ToModel(productID uuid.UUID) *model.ProductRecipe {
	return &model.ProductRecipe{ProductID: productID, IngredientID: i.IngredientID, Quantity: i.Quantity, Unit: i.Unit}
}

type UpdateRecipeRequest struct {
	IngredientID *uuid.UUID       `json:"ingredientId"`
	Quantity     *decimal.Decimal `json:"quantity"`
	Unit         *string          `json:"unit" validate:"omitempty,max=20"`
}

func (r UpdateRecipeRequest) Check() error {
	if r.Quantity != nil && !r.Quantity.IsPositive() {
		return rpcerr.BadRequest("quantity must be greater than zero")
	}
	return nil
}

func (r UpdateRecipeRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "ingredient_id", r.IngredientID)
	set(m, "quantity", r.Quantity)
	set(m, "unit", r.Unit)
	return m
}

// --- Tag link ---

type TagItem struct {
	TagID uuid.UUID `json:"tagId" validate:"uuid_required"`
}

func (i TagItem) ToModel(productID uuid.UUID) *model.ProductTag {
	return &model.ProductTag{ProductID: productID, TagID: i.TagID}
}

type UpdateTagLinkRequest struct {
	TagID *uuid.UUID `json:"tagId"`
}

func (r UpdateTagLinkRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "tag_id", r.TagID)
	return m
}

// --- Question link ---

type QuestionItem struct {
	QuestionID uuid.UUID `json:"questionId" validate:"uuid_required"`
	Position   int       `json:"position" validate:"min=0"`
}

func (i QuestionItem) ToModel(productID uuid.UUID) *model.QuestionProduct {
	return &model.QuestionProduct{
		ProductID:  productID,
		QuestionID: i.QuestionID,
		Position:   i.Position,
		ItemType:   model.ItemQuestion,
	}
}

type UpdateQuestionLinkRequest struct {
	QuestionID *uuid.UUID `json:"questionId"`
	Position   *int       `json:"position" validate:"omitempty,min=0"`
}

func (r UpdateQuestionLinkRequest) Updates() map[string]interface{} {
	m := map[string]interface{}{}
	set(m, "question_id", r.QuestionID)
	set(m, "position", r.Position)
	return m
}

// --- Answer ---

// AnswerItem makes ProductID an option of a question.
type AnswerItem struct {
	ProductID uuid.UUID `json:"productId" validate:"uuid_required"`
	Position  int       `json:"position" validate:"min=0"`
}

func (i AnswerItem) toModel(questionID uuid.UUID) model.QuestionProduct {
	return model.QuestionProduct{
		QuestionID: questionID,
		ProductID:  i.ProductID,
		Position:   i.Position,
		ItemType:   model.ItemAnswer,
	}
}
