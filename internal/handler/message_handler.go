package handler

import (
	"context"
	"encoding/json"

	"go-catalog-ms/internal/model"
	"go-catalog-ms/internal/service"
	"go-catalog-ms/internal/transport"
	"go-catalog-ms/pkg/pagination"

	"github.com/google/uuid"
)

// Services is everything the message routes dispatch to.
type Services struct {
	Chains       service.CatalogService[model.Chain, service.CreateChainRequest, service.UpdateChainRequest]
	Restaurants  service.RestaurantService
	Categories   service.CategoryService
	Tags         service.CatalogService[model.Tag, service.CreateTagRequest, service.UpdateTagRequest]
	Ingredients  service.CatalogService[model.Ingredient, service.CreateIngredientRequest, service.UpdateIngredientRequest]
	Questions    service.QuestionService
	Products     service.ProductService
	Translations service.TranslationService

	Sizes            service.LinkService[model.ProductSize, service.SizeItem, service.UpdateSizeRequest]
	Images           service.LinkService[model.ProductImage, service.ImageItem, service.UpdateImageRequest]
	Schedules        service.LinkService[model.ProductSchedule, service.ScheduleItem, service.UpdateScheduleRequest]
	Recipes          service.LinkService[model.ProductRecipe, service.RecipeItem, service.UpdateRecipeRequest]
	ProductTags      service.LinkService[model.ProductTag, service.TagItem, service.UpdateTagLinkRequest]
	ProductQuestions service.LinkService[model.QuestionProduct, service.QuestionItem, service.UpdateQuestionLinkRequest]
}

type MessageHandler struct {
	services Services
}

func NewMessageHandler(s Services) *MessageHandler {
	return &MessageHandler{services: s}
}

// Register binds every "<resource>.<operation>" pattern.
func (h *MessageHandler) Register(router *transport.Router) {
	s := h.services

	catalogRoutes(s.Chains).Register(router, "chain")
	catalogRoutes(s.Tags).Register(router, "tag")
	catalogRoutes(s.Ingredients).Register(router, "ingredient")
	h.restaurantRoutes().Register(router, "restaurant")
	h.categoryRoutes().Register(router, "category")
	h.productRoutes().Register(router, "product")
	h.questionRoutes().Register(router, "question")
	h.translationRoutes().Register(router, "translation")

	linkRoutes(s.Sizes).Register(router, "productSize")
	linkRoutes(s.Images).Register(router, "productImage")
	linkRoutes(s.Schedules).Register(router, "productSchedule")
	linkRoutes(s.Recipes).Register(router, "productRecipe")
	linkRoutes(s.ProductTags).Register(router, "productTag")
	linkRoutes(s.ProductQuestions).Register(router, "productQuestion")
}

func (h *MessageHandler) restaurantRoutes() Routes {
	svc := h.services.Restaurants
	routes := catalogRoutes[model.Restaurant, service.CreateRestaurantRequest, service.UpdateRestaurantRequest](svc)
	routes["findByChain"] = func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var p struct {
			ChainID uuid.UUID `json:"chainId"`
			pagination.Params
		}
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if err := requireID(p.ChainID, "chainId"); err != nil {
			return nil, err
		}
		return respond(svc.FindByChain(ctx, p.ChainID, p.Params))
	}
	return routes
}

func (h *MessageHandler) categoryRoutes() Routes {
	svc := h.services.Categories
	routes := catalogRoutes[model.Category, service.CreateCategoryRequest, service.UpdateCategoryRequest](svc)
	routes["findByRestaurant"] = func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var p struct {
			RestaurantID uuid.UUID `json:"restaurantId"`
			pagination.Params
		}
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if err := requireID(p.RestaurantID, "restaurantId"); err != nil {
			return nil, err
		}
		return respond(svc.FindByRestaurant(ctx, p.RestaurantID, p.Params))
	}
	return routes
}

func (h *MessageHandler) productRoutes() Routes {
	svc := h.services.Products
	routes := catalogRoutes[model.Product, service.CreateProductRequest, service.UpdateProductRequest](svc)

	// findOne answers with the expanded question tree.
	routes["findOne"] = func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var p idPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if err := requireID(p.ID, "id"); err != nil {
			return nil, err
		}
		return respond(svc.FindTree(ctx, p.ID))
	}
	routes["validate"] = func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var req service.ValidateProductsRequest
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return respond(svc.Validate(ctx, req))
	}
	return routes
}

func (h *MessageHandler) questionRoutes() Routes {
	svc := h.services.Questions
	routes := catalogRoutes[model.Question, service.CreateQuestionRequest, service.UpdateQuestionRequest](svc)

	routes["findAnswers"] = func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var p struct {
			QuestionID uuid.UUID `json:"questionId"`
		}
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if err := requireID(p.QuestionID, "questionId"); err != nil {
			return nil, err
		}
		return respond(svc.FindAnswers(ctx, p.QuestionID))
	}
	routes["addAnswer"] = func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var p struct {
			QuestionID uuid.UUID `json:"questionId"`
			service.AnswerItem
		}
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if err := requireID(p.QuestionID, "questionId"); err != nil {
			return nil, err
		}
		return respond(svc.AddAnswer(ctx, p.QuestionID, p.AnswerItem))
	}
	routes["replaceAnswers"] = func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var p struct {
			QuestionID uuid.UUID            `json:"questionId"`
			Items      []service.AnswerItem `json:"items"`
		}
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if err := requireID(p.QuestionID, "questionId"); err != nil {
			return nil, err
		}
		return respond(svc.ReplaceAnswers(ctx, p.QuestionID, p.Items))
	}
	routes["removeAnswer"] = func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
		var p idPayload
		if err := decode(payload, &p); err != nil {
			return nil, err
		}
		if err := requireID(p.ID, "id"); err != nil {
			return nil, err
		}
		return respond(svc.RemoveAnswer(ctx, p.ID))
	}
	return routes
}

func (h *MessageHandler) translationRoutes() Routes {
	svc := h.services.Translations
	return Routes{
		"create": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var req service.CreateTranslationRequest
			if err := decode(payload, &req); err != nil {
				return nil, err
			}
			return respond(svc.Create(ctx, req))
		},
		"findAll": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var params pagination.Params
			if err := decode(payload, &params); err != nil {
				return nil, err
			}
			return respond(svc.FindAll(ctx, params))
		},
		"findOne": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var p idPayload
			if err := decode(payload, &p); err != nil {
				return nil, err
			}
			if err := requireID(p.ID, "id"); err != nil {
				return nil, err
			}
			return respond(svc.FindOne(ctx, p.ID))
		},
		"update": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var p idPayload
			var req service.UpdateTranslationRequest
			if err := decode(payload, &p); err != nil {
				return nil, err
			}
			if err := requireID(p.ID, "id"); err != nil {
				return nil, err
			}
			if err := decode(payload, &req); err != nil {
				return nil, err
			}
			return respond(svc.Update(ctx, p.ID, req))
		},
		"remove": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var p idPayload
			if err := decode(payload, &p); err != nil {
				return nil, err
			}
			if err := requireID(p.ID, "id"); err != nil {
				return nil, err
			}
			return respond(svc.Remove(ctx, p.ID))
		},
		"findByEntity": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var req service.FindTranslationsRequest
			if err := decode(payload, &req); err != nil {
				return nil, err
			}
			return respond(svc.FindByEntity(ctx, req))
		},
	}
}
