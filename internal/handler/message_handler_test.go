package handler

import (
	"context"
	"net/http"
	"testing"

	"go-catalog-ms/internal/model"
	"go-catalog-ms/internal/service"
	"go-catalog-ms/internal/transport"
	"go-catalog-ms/pkg/pagination"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// stubTags records what the routes pass through.
type stubTags struct {
	service.CatalogService[model.Tag, service.CreateTagRequest, service.UpdateTagRequest]
	created  service.CreateTagRequest
	updated  service.UpdateTagRequest
	updateID uuid.UUID
	params   pagination.Params
	search   string
}

func (s *stubTags) Create(_ context.Context, req service.CreateTagRequest) (*model.Tag, error) {
	s.created = req
	return &model.Tag{Name: req.Name}, nil
}

func (s *stubTags) Update(_ context.Context, id uuid.UUID, req service.UpdateTagRequest) (*model.Tag, error) {
	s.updateID = id
	s.updated = req
	return &model.Tag{}, nil
}

func (s *stubTags) Search(_ context.Context, name string, params pagination.Params) (*pagination.Page[model.Tag], error) {
	s.search = name
	s.params = params
	return pagination.NewPage[model.Tag](nil, 0, params), nil
}

func TestRegisterBindsEveryResource(t *testing.T) {
	router := transport.NewRouter(zerolog.Nop())
	NewMessageHandler(Services{}).Register(router)

	patterns := router.Patterns()
	for _, p := range []string{
		"chain.create", "chain.findAll", "chain.findOne", "chain.update", "chain.remove", "chain.search",
		"restaurant.findByChain", "category.findByRestaurant",
		"product.findOne", "product.validate", "product.search",
		"question.findAnswers", "question.addAnswer", "question.replaceAnswers", "question.removeAnswer",
		"translation.findByEntity", "translation.remove",
		"productSize.replaceByProductId", "productImage.bulkCreate", "productSchedule.findByProductId",
		"productRecipe.removeByProductId", "productTag.create", "productQuestion.update",
		"tag.findAll", "ingredient.remove",
	} {
		require.Contains(t, patterns, p)
	}
	// 7 catalog resources x 6 ops, their extras, translation, 6 link resources x 9 ops
	require.Len(t, patterns, 7*6+1+1+1+4+6+6*9)
}

func TestRoutesValidateEnvelope(t *testing.T) {
	router := transport.NewRouter(zerolog.Nop())
	NewMessageHandler(Services{}).Register(router)
	ctx := context.Background()

	reply := router.Dispatch(ctx, "product.findOne", []byte(`{}`))
	require.Equal(t, http.StatusBadRequest, reply.Status())
	require.Equal(t, "Validation failed: Field 'id' failed on tag 'required'", reply.Err.Message)

	reply = router.Dispatch(ctx, "productSize.findByProductId", []byte(`{"productId":"nope"}`))
	require.Equal(t, http.StatusBadRequest, reply.Status())
	require.Contains(t, reply.Err.Message, "Invalid payload")

	reply = router.Dispatch(ctx, "question.findAnswers", []byte(`[1,2]`))
	require.Equal(t, http.StatusBadRequest, reply.Status())
}

func TestCatalogRoutesDecodePayload(t *testing.T) {
	tags := &stubTags{}
	router := transport.NewRouter(zerolog.Nop())
	NewMessageHandler(Services{Tags: tags}).Register(router)
	ctx := context.Background()

	reply := router.Dispatch(ctx, "tag.create", []byte(`{"name":"Spicy","color":"#ff0000","createdBy":"ops"}`))
	require.Nil(t, reply.Err)
	require.Equal(t, "Spicy", tags.created.Name)
	require.Equal(t, "ops", tags.created.CreatedBy)

	id := uuid.New()
	reply = router.Dispatch(ctx, "tag.update", []byte(`{"id":"`+id.String()+`","isActive":false}`))
	require.Nil(t, reply.Err)
	require.Equal(t, id, tags.updateID)
	require.Nil(t, tags.updated.Name)
	require.Equal(t, map[string]interface{}{"is_active": false}, tags.updated.Updates())

	reply = router.Dispatch(ctx, "tag.search", []byte(`{"name":"sp","page":2,"limit":5}`))
	require.Nil(t, reply.Err)
	require.Equal(t, "sp", tags.search)
	require.Equal(t, pagination.Params{Page: 2, Limit: 5}, tags.params)
}
