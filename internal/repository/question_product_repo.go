package repository

import (
	"context"

	"go-catalog-ms/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func itemTypeScope(t model.ItemType) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("item_type = ?", t)
	}
}

// QuestionProductRepository serves the question_products edge table. The
// embedded LinkRepository only sees QUESTION rows; answers have their own methods.
type QuestionProductRepository interface {
	LinkRepository[model.QuestionProduct]

	FindAnswers(ctx context.Context, questionID uuid.UUID) ([]model.QuestionProduct, error)
	AddAnswer(ctx context.Context, answer *model.QuestionProduct) error
	ReplaceAnswers(ctx context.Context, questionID uuid.UUID, answers []model.QuestionProduct) ([]model.QuestionProduct, error)
	RemoveAnswer(ctx context.Context, id uuid.UUID) (*model.QuestionProduct, error)

	// QuestionLinks returns the QUESTION rows of a product by position, each
	// with its question. Rows whose question is soft-deleted are dropped.
	QuestionLinks(ctx context.Context, productID uuid.UUID) ([]model.QuestionProduct, error)
	// AnswerProducts returns the non-deleted products answering a question, by position.
	AnswerProducts(ctx context.Context, questionID uuid.UUID) ([]model.Product, error)
}

type questionProductRepo struct {
	LinkRepository[model.QuestionProduct]
	db      *gorm.DB
	answers *rowRepo[model.QuestionProduct]
}

func NewQuestionProductRepo(db *gorm.DB) QuestionProductRepository {
	return &questionProductRepo{
		LinkRepository: NewLinkRepo[model.QuestionProduct](db, RowOptions{
			Order:    "position ASC, id ASC",
			Preloads: []Preload{{Relation: "Question"}},
			Scope:    itemTypeScope(model.ItemQuestion),
		}),
		db: db,
		answers: newRowRepo[model.QuestionProduct](db, RowOptions{
			Order:    "position ASC, id ASC",
			Preloads: []Preload{{Relation: "Product"}},
			Scope:    itemTypeScope(model.ItemAnswer),
		}),
	}
}

func (r *questionProductRepo) FindAnswers(ctx context.Context, questionID uuid.UUID) ([]model.QuestionProduct, error) {
	var answers []model.QuestionProduct
	err := applyPreloads(r.answers.scoped(ctx), r.answers.opts.Preloads).
		Where("question_id = ?", questionID).
		Order("position ASC").
		Find(&answers).Error
	return answers, errors.Wrapf(err, "find answers of question %s", questionID)
}

func (r *questionProductRepo) AddAnswer(ctx context.Context, answer *model.QuestionProduct) error {
	answer.ItemType = model.ItemAnswer
	return r.answers.Create(ctx, answer)
}

func (r *questionProductRepo) ReplaceAnswers(ctx context.Context, questionID uuid.UUID, answers []model.QuestionProduct) ([]model.QuestionProduct, error) {
	for i := range answers {
		answers[i].QuestionID = questionID
		answers[i].ItemType = model.ItemAnswer
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Scopes(itemTypeScope(model.ItemAnswer)).
			Where("question_id = ?", questionID).
			Delete(&model.QuestionProduct{}).Error
		if err != nil {
			return errors.Wrapf(err, "clear answers of question %s", questionID)
		}
		if len(answers) == 0 {
			return nil
		}
		return errors.Wrap(tx.Create(&answers).Error, "insert answers")
	})
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []model.QuestionProduct{}
	}
	return answers, nil
}

func (r *questionProductRepo) RemoveAnswer(ctx context.Context, id uuid.UUID) (*model.QuestionProduct, error) {
	return r.answers.Delete(ctx, id)
}

func (r *questionProductRepo) QuestionLinks(ctx context.Context, productID uuid.UUID) ([]model.QuestionProduct, error) {
	var links []model.QuestionProduct
	err := r.db.WithContext(ctx).
		Scopes(itemTypeScope(model.ItemQuestion)).
		Preload("Question").
		Where("product_id = ?", productID).
		Order("position ASC").
		Find(&links).Error
	if err != nil {
		return nil, errors.Wrapf(err, "find questions of product %s", productID)
	}

	live := links[:0]
	for _, link := range links {
		if link.Question != nil {
			live = append(live, link)
		}
	}
	return live, nil
}

func (r *questionProductRepo) AnswerProducts(ctx context.Context, questionID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN question_products qp ON qp.product_id = products.id AND qp.item_type = ?", model.ItemAnswer).
		Where("qp.question_id = ?", questionID).
		Order("qp.position ASC").
		Find(&products).Error
	return products, errors.Wrapf(err, "find answer products of question %s", questionID)
}
