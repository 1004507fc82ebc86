package service

import (
	"context"

	"go-catalog-ms/internal/model"
	"go-catalog-ms/internal/repository"
	"go-catalog-ms/pkg/rpcerr"

	"github.com/google/uuid"
)

type QuestionService interface {
	CatalogService[model.Question, CreateQuestionRequest, UpdateQuestionRequest]
	FindAnswers(ctx context.Context, questionID uuid.UUID) ([]model.QuestionProduct, error)
	AddAnswer(ctx context.Context, questionID uuid.UUID, item AnswerItem) (*model.QuestionProduct, error)
	ReplaceAnswers(ctx context.Context, questionID uuid.UUID, items []AnswerItem) ([]model.QuestionProduct, error)
	RemoveAnswer(ctx context.Context, id uuid.UUID) (*model.QuestionProduct, error)
}

type questionService struct {
	*catalogService[model.Question, CreateQuestionRequest, UpdateQuestionRequest]
	questions repository.CrudRepository[model.Question]
	products  repository.CrudRepository[model.Product]
	edges     repository.QuestionProductRepository
}

func NewQuestionService(
	questions repository.CrudRepository[model.Question],
	products repository.CrudRepository[model.Product],
	edges repository.QuestionProductRepository,
	trees *TreeCache,
) QuestionService {
	return &questionService{
		catalogService: newCatalogService[model.Question, CreateQuestionRequest, UpdateQuestionRequest]("Question", questions, WithTreeInvalidation(trees)),
		questions:      questions,
		products:       products,
		edges:          edges,
	}
}

func (s *questionService) ensureQuestion(ctx context.Context, id uuid.UUID) error {
	ok, err := s.questions.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return rpcerr.NotFound("Question with id %s not found", id)
	}
	return nil
}

func (s *questionService) ensureProducts(ctx context.Context, items []AnswerItem) error {
	for _, item := range items {
		if err := validate(item); err != nil {
			return err
		}
		ok, err := s.products.Exists(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			return rpcerr.NotFound("Product with id %s not found", item.ProductID)
		}
	}
	return nil
}

func (s *questionService) FindAnswers(ctx context.Context, questionID uuid.UUID) ([]model.QuestionProduct, error) {
	if err := s.ensureQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	answers, err := s.edges.FindAnswers(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = []model.QuestionProduct{}
	}
	return answers, nil
}

func (s *questionService) AddAnswer(ctx context.Context, questionID uuid.UUID, item AnswerItem) (*model.QuestionProduct, error) {
	if err := s.ensureProducts(ctx, []AnswerItem{item}); err != nil {
		return nil, err
	}
	if err := s.ensureQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	answer := item.toModel(questionID)
	if err := s.edges.AddAnswer(ctx, &answer); err != nil {
		return nil, err
	}
	s.opts.changed(ctx)
	return &answer, nil
}

func (s *questionService) ReplaceAnswers(ctx context.Context, questionID uuid.UUID, items []AnswerItem) ([]model.QuestionProduct, error) {
	if err := s.ensureProducts(ctx, items); err != nil {
		return nil, err
	}
	if err := s.ensureQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	answers := make([]model.QuestionProduct, 0, len(items))
	for _, item := range items {
		answers = append(answers, item.toModel(questionID))
	}

	replaced, err := s.edges.ReplaceAnswers(ctx, questionID, answers)
	if err != nil {
		return nil, err
	}
	s.opts.changed(ctx)
	return replaced, nil
}

func (s *questionService) RemoveAnswer(ctx context.Context, id uuid.UUID) (*model.QuestionProduct, error) {
	answer, err := s.edges.RemoveAnswer(ctx, id)
	if err != nil {
		return nil, notFound(err, "Answer", id)
	}
	s.opts.changed(ctx)
	return answer, nil
}
