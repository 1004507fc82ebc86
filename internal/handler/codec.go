package handler

import (
	"context"
	"encoding/json"

	"go-catalog-ms/internal/service"
	"go-catalog-ms/internal/transport"
	"go-catalog-ms/pkg/pagination"
	"go-catalog-ms/pkg/rpcerr"

	"github.com/google/uuid"
)

type idPayload struct {
	ID uuid.UUID `json:"id"`
}

type removePayload struct {
	ID        uuid.UUID `json:"id"`
	DeletedBy string    `json:"deletedBy"`
}

type searchPayload struct {
	Name string `json:"name"`
	pagination.Params
}

type productPayload struct {
	ProductID uuid.UUID `json:"productId"`
}

type itemsPayload[I any] struct {
	ProductID uuid.UUID `json:"productId"`
	Items     []I       `json:"items"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

func decode(payload json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return rpcerr.BadRequest("Invalid payload: %v", err)
	}
	return nil
}

// requireID rejects a missing or zero uuid under the given field name.
func requireID(id uuid.UUID, field string) error {
	if id == uuid.Nil {
		return rpcerr.BadRequest("Validation failed: Field '%s' failed on tag 'required'", field)
	}
	return nil
}

func respond[R any](res R, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Routes maps an operation name to its handler; Register prefixes it with the resource.
type Routes map[string]transport.HandlerFunc

func (r Routes) Register(router *transport.Router, resource string) {
	for op, h := range r {
		router.Handle(resource+"."+op, h)
	}
}

func catalogRoutes[T any, C service.Creatable[T], U service.Patch](svc service.CatalogService[T, C, U]) Routes {
	return Routes{
		"create": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var req C
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
			var req U
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
			var p removePayload
			if err := decode(payload, &p); err != nil {
				return nil, err
			}
			if err := requireID(p.ID, "id"); err != nil {
				return nil, err
			}
			return respond(svc.Remove(ctx, p.ID, p.DeletedBy))
		},
		"search": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var p searchPayload
			if err := decode(payload, &p); err != nil {
				return nil, err
			}
			return respond(svc.Search(ctx, p.Name, p.Params))
		},
	}
}

func linkRoutes[T any, I service.ProductItem[T], U service.Patch](svc service.LinkService[T, I, U]) Routes {
	return Routes{
		"create": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var p productPayload
			var item I
			if err := decode(payload, &p); err != nil {
				return nil, err
			}
			if err := decode(payload, &item); err != nil {
				return nil, err
			}
			return respond(svc.Create(ctx, p.ProductID, item))
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
			var req U
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
		"findByProductId": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var p productPayload
			if err := decode(payload, &p); err != nil {
				return nil, err
			}
			if err := requireID(p.ProductID, "productId"); err != nil {
				return nil, err
			}
			return respond(svc.FindByProductID(ctx, p.ProductID))
		},
		"removeByProductId": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var p productPayload
			if err := decode(payload, &p); err != nil {
				return nil, err
			}
			if err := requireID(p.ProductID, "productId"); err != nil {
				return nil, err
			}
			count, err := svc.RemoveByProductID(ctx, p.ProductID)
			return respond(countResponse{Count: count}, err)
		},
		"bulkCreate": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var p itemsPayload[I]
			if err := decode(payload, &p); err != nil {
				return nil, err
			}
			return respond(svc.BulkCreate(ctx, p.ProductID, p.Items))
		},
		"replaceByProductId": func(ctx context.Context, payload json.RawMessage) (interface{}, error) {
			var p itemsPayload[I]
			if err := decode(payload, &p); err != nil {
				return nil, err
			}
			return respond(svc.ReplaceByProductID(ctx, p.ProductID, p.Items))
		},
	}
}
