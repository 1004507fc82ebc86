package service

import (
	"context"

	"go-catalog-ms/internal/model"

	"github.com/google/uuid"
)

// QuestionGraph is the read side of the question_products edges.
type QuestionGraph interface {
	QuestionLinks(ctx context.Context, productID uuid.UUID) ([]model.QuestionProduct, error)
	AnswerProducts(ctx context.Context, questionID uuid.UUID) ([]model.Product, error)
}

// QuestionTreeExpander walks product -> question -> answer product -> ...
// A product already on the current path is attached with no questions, so
// cyclic data still terminates. Sibling branches may repeat a product.
type QuestionTreeExpander struct {
	graph QuestionGraph
}

func NewQuestionTreeExpander(graph QuestionGraph) *QuestionTreeExpander {
	return &QuestionTreeExpander{graph: graph}
}

func (e *QuestionTreeExpander) Expand(ctx context.Context, product model.Product) (*model.ProductTree, error) {
	return e.expand(ctx, product, make(map[uuid.UUID]struct{}))
}

func (e *QuestionTreeExpander) expand(ctx context.Context, product model.Product, path map[uuid.UUID]struct{}) (*model.ProductTree, error) {
	tree := &model.ProductTree{Product: product, Questions: []model.QuestionNode{}}
	if _, onPath := path[product.ID]; onPath {
		return tree, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path[product.ID] = struct{}{}
	defer delete(path, product.ID)

	links, err := e.graph.QuestionLinks(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	for _, link := range links {
		node := model.QuestionNode{Question: *link.Question, Answers: []model.ProductTree{}}

		answers, err := e.graph.AnswerProducts(ctx, link.QuestionID)
		if err != nil {
			return nil, err
		}
		for _, answer := range answers {
			sub, err := e.expand(ctx, answer, path)
			if err != nil {
				return nil, err
			}
			node.Answers = append(node.Answers, *sub)
		}

		tree.Questions = append(tree.Questions, node)
	}
	return tree, nil
}

// FindCycle returns the first product path that leads back to one of its own
// products, e.g. [A, B, A], or nil when the tree under root is acyclic.
func (e *QuestionTreeExpander) FindCycle(ctx context.Context, root uuid.UUID) ([]uuid.UUID, error) {
	var (
		path    []uuid.UUID
		onPath  = make(map[uuid.UUID]bool)
		cleared = make(map[uuid.UUID]bool)
	)

	var visit func(id uuid.UUID) ([]uuid.UUID, error)
	visit = func(id uuid.UUID) ([]uuid.UUID, error) {
		if onPath[id] {
			for i, p := range path {
				if p == id {
					cycle := append([]uuid.UUID{}, path[i:]...)
					return append(cycle, id), nil
				}
			}
		}
		if cleared[id] {
			return nil, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		onPath[id] = true
		path = append(path, id)
		defer func() {
			onPath[id] = false
			path = path[:len(path)-1]
		}()

		links, err := e.graph.QuestionLinks(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, link := range links {
			answers, err := e.graph.AnswerProducts(ctx, link.QuestionID)
			if err != nil {
				return nil, err
			}
			for _, answer := range answers {
				cycle, err := visit(answer.ID)
				if err != nil || cycle != nil {
					return cycle, err
				}
			}
		}

		cleared[id] = true
		return nil, nil
	}

	return visit(root)
}
