package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"go-catalog-ms/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memGraph is an in-memory question_products table.
type memGraph struct {
	products  map[uuid.UUID]model.Product
	questions map[uuid.UUID]model.Question
	edges     []model.QuestionProduct
	failOn    uuid.UUID
}

func newMemGraph() *memGraph {
	return &memGraph{
		products:  map[uuid.UUID]model.Product{},
		questions: map[uuid.UUID]model.Question{},
	}
}

func (g *memGraph) product(name string) model.Product {
	p := model.Product{BaseModel: model.BaseModel{ID: uuid.New()}, Name: name, Status: model.ProductActive}
	g.products[p.ID] = p
	return p
}

func (g *memGraph) question(name string) model.Question {
	q := model.Question{BaseModel: model.BaseModel{ID: uuid.New()}, Name: name, Type: model.QuestionSingleChoice}
	g.questions[q.ID] = q
	return q
}

func (g *memGraph) ask(p model.Product, q model.Question, position int) {
	g.edges = append(g.edges, model.QuestionProduct{ProductID: p.ID, QuestionID: q.ID, Position: position, ItemType: model.ItemQuestion})
}

func (g *memGraph) answer(q model.Question, p model.Product, position int) {
	g.edges = append(g.edges, model.QuestionProduct{ProductID: p.ID, QuestionID: q.ID, Position: position, ItemType: model.ItemAnswer})
}

func sortByPosition(edges []model.QuestionProduct) {
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Position < edges[j].Position })
}

func (g *memGraph) QuestionLinks(_ context.Context, productID uuid.UUID) ([]model.QuestionProduct, error) {
	if productID == g.failOn {
		return nil, errors.New("connection reset")
	}
	var links []model.QuestionProduct
	for _, e := range g.edges {
		if e.ItemType == model.ItemQuestion && e.ProductID == productID {
			q := g.questions[e.QuestionID]
			e.Question = &q
			links = append(links, e)
		}
	}
	sortByPosition(links)
	return links, nil
}

func (g *memGraph) AnswerProducts(_ context.Context, questionID uuid.UUID) ([]model.Product, error) {
	var edges []model.QuestionProduct
	for _, e := range g.edges {
		if e.ItemType == model.ItemAnswer && e.QuestionID == questionID {
			edges = append(edges, e)
		}
	}
	sortByPosition(edges)
	products := make([]model.Product, 0, len(edges))
	for _, e := range edges {
		products = append(products, g.products[e.ProductID])
	}
	return products, nil
}

func answerNames(node model.QuestionNode) []string {
	names := make([]string, 0, len(node.Answers))
	for _, a := range node.Answers {
		names = append(names, a.Name)
	}
	return names
}

func TestExpandProductWithoutQuestions(t *testing.T) {
	g := newMemGraph()
	burger := g.product("Burger")

	tree, err := NewQuestionTreeExpander(g).Expand(context.Background(), burger)
	require.NoError(t, err)
	require.NotNil(t, tree.Questions)
	require.Empty(t, tree.Questions)

	raw, err := json.Marshal(tree)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"questions":[]`)
	require.Contains(t, string(raw), `"name":"Burger"`)
}

func TestExpandQuestionWithoutAnswers(t *testing.T) {
	g := newMemGraph()
	p := g.product("Pizza")
	min, max := 1, 3
	size := model.Question{BaseModel: model.BaseModel{ID: uuid.New()}, Name: "Size?", Type: model.QuestionNumber, Min: &min, Max: &max}
	g.questions[size.ID] = size
	g.ask(p, size, 0)

	tree, err := NewQuestionTreeExpander(g).Expand(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, tree.Questions, 1)
	require.Equal(t, "Size?", tree.Questions[0].Name)
	require.Equal(t, 3, *tree.Questions[0].Max)
	require.NotNil(t, tree.Questions[0].Answers)
	require.Empty(t, tree.Questions[0].Answers)
}

func TestExpandNestedTreeOrderedByPosition(t *testing.T) {
	g := newMemGraph()
	combo := g.product("Combo")
	drink := g.question("Drink")
	side := g.question("Side")
	cola := g.product("Cola")
	juice := g.product("Juice")
	fries := g.product("Fries")
	ice := g.question("Ice")
	noIce := g.product("No ice")
	extraIce := g.product("Extra ice")

	g.ask(combo, side, 2)
	g.ask(combo, drink, 1)
	g.answer(drink, juice, 2)
	g.answer(drink, cola, 1)
	g.answer(side, fries, 0)
	g.ask(cola, ice, 0)
	g.answer(ice, extraIce, 1)
	g.answer(ice, noIce, 0)

	tree, err := NewQuestionTreeExpander(g).Expand(context.Background(), combo)
	require.NoError(t, err)

	require.Len(t, tree.Questions, 2)
	require.Equal(t, "Drink", tree.Questions[0].Name)
	require.Equal(t, "Side", tree.Questions[1].Name)
	require.Equal(t, []string{"Cola", "Juice"}, answerNames(tree.Questions[0]))
	require.Equal(t, []string{"Fries"}, answerNames(tree.Questions[1]))

	colaTree := tree.Questions[0].Answers[0]
	require.Len(t, colaTree.Questions, 1)
	require.Equal(t, []string{"No ice", "Extra ice"}, answerNames(colaTree.Questions[0]))
	require.Empty(t, tree.Questions[0].Answers[1].Questions)
}

func TestExpandStopsOnCycle(t *testing.T) {
	g := newMemGraph()
	a := g.product("A")
	b := g.product("B")
	qa := g.question("QA")
	qb := g.question("QB")
	g.ask(a, qa, 0)
	g.answer(qa, b, 0)
	g.ask(b, qb, 0)
	g.answer(qb, a, 0)

	tree, err := NewQuestionTreeExpander(g).Expand(context.Background(), a)
	require.NoError(t, err)

	bTree := tree.Questions[0].Answers[0]
	require.Equal(t, "B", bTree.Name)
	aAgain := bTree.Questions[0].Answers[0]
	require.Equal(t, a.ID, aAgain.ID)
	require.Empty(t, aAgain.Questions)
}

func TestExpandSelfAnswer(t *testing.T) {
	g := newMemGraph()
	a := g.product("A")
	q := g.question("Again?")
	g.ask(a, q, 0)
	g.answer(q, a, 0)

	tree, err := NewQuestionTreeExpander(g).Expand(context.Background(), a)
	require.NoError(t, err)
	require.Len(t, tree.Questions[0].Answers, 1)
	require.Empty(t, tree.Questions[0].Answers[0].Questions)
}

func TestExpandRepeatsProductAcrossSiblings(t *testing.T) {
	g := newMemGraph()
	root := g.product("Root")
	q1 := g.question("Q1")
	q2 := g.question("Q2")
	shared := g.product("Shared")
	inner := g.question("Inner")
	leaf := g.product("Leaf")
	g.ask(root, q1, 0)
	g.ask(root, q2, 1)
	g.answer(q1, shared, 0)
	g.answer(q2, shared, 0)
	g.ask(shared, inner, 0)
	g.answer(inner, leaf, 0)

	tree, err := NewQuestionTreeExpander(g).Expand(context.Background(), root)
	require.NoError(t, err)
	for _, node := range tree.Questions {
		require.Len(t, node.Answers, 1)
		require.Len(t, node.Answers[0].Questions, 1)
		require.Equal(t, []string{"Leaf"}, answerNames(node.Answers[0].Questions[0]))
	}
}

func TestExpandReturnsGraphError(t *testing.T) {
	g := newMemGraph()
	root := g.product("Root")
	q := g.question("Q")
	broken := g.product("Broken")
	g.ask(root, q, 0)
	g.answer(q, broken, 0)
	g.failOn = broken.ID

	_, err := NewQuestionTreeExpander(g).Expand(context.Background(), root)
	require.EqualError(t, err, "connection reset")
}

func TestExpandHonorsCancellation(t *testing.T) {
	g := newMemGraph()
	p := g.product("P")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewQuestionTreeExpander(g).Expand(ctx, p)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFindCycle(t *testing.T) {
	g := newMemGraph()
	a := g.product("A")
	b := g.product("B")
	c := g.product("C")
	qa := g.question("QA")
	qb := g.question("QB")
	g.ask(a, qa, 0)
	g.answer(qa, b, 0)
	g.ask(b, qb, 0)
	g.answer(qb, c, 0)

	expander := NewQuestionTreeExpander(g)
	cycle, err := expander.FindCycle(context.Background(), a.ID)
	require.NoError(t, err)
	require.Nil(t, cycle)

	g.answer(qb, a, 1)
	cycle, err = expander.FindCycle(context.Background(), a.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{a.ID, b.ID, a.ID}, cycle)
}

func TestFindCycleBelowRoot(t *testing.T) {
	g := newMemGraph()
	root := g.product("Root")
	b := g.product("B")
	c := g.product("C")
	q := g.question("Q")
	qb := g.question("QB")
	qc := g.question("QC")
	g.ask(root, q, 0)
	g.answer(q, b, 0)
	g.ask(b, qb, 0)
	g.answer(qb, c, 0)
	g.ask(c, qc, 0)
	g.answer(qc, b, 0)

	cycle, err := NewQuestionTreeExpander(g).FindCycle(context.Background(), root.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{b.ID, c.ID, b.ID}, cycle)
}
