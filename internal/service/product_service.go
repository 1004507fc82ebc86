package service

import (
	"context"
	"errors"
	"strings"

	"go-catalog-ms/internal/model"
	"go-catalog-ms/internal/repository"
	"go-catalog-ms/pkg/rpcerr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	CatalogService[model.Product, CreateProductRequest, UpdateProductRequest]
	// FindTree is findOne for products: relations preloaded and questions expanded.
	FindTree(ctx context.Context, id uuid.UUID) (*model.ProductTree, error)
	// Validate returns the requested products when all of them exist and are ACTIVE.
	Validate(ctx context.Context, req ValidateProductsRequest) ([]model.Product, error)
}

type productService struct {
	*catalogService[model.Product, CreateProductRequest, UpdateProductRequest]
	products repository.ProductRepository
	expander *QuestionTreeExpander
	trees    *TreeCache
}

func NewProductService(products repository.ProductRepository, expander *QuestionTreeExpander, trees *TreeCache, opts ...Option) ProductService {
	opts = append(opts, WithTreeInvalidation(trees))
	return &productService{
		catalogService: newCatalogService[model.Product, CreateProductRequest, UpdateProductRequest]("Product", products, opts...),
		products:       products,
		expander:       expander,
		trees:          trees,
	}
}

func (s *productService) Create(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	// Cek duplikasi SKU
	existing, err := s.products.FindBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, rpcerr.BadRequest("SKU %s already exists", req.SKU)
	}

	return s.catalogService.Create(ctx, req)
}

func (s *productService) FindTree(ctx context.Context, id uuid.UUID) (*model.ProductTree, error) {
	if tree, ok := s.trees.Get(ctx, id); ok {
		return tree, nil
	}

	product, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	tree, err := s.expander.Expand(ctx, *product)
	if err != nil {
		return nil, err
	}

	s.trees.Set(ctx, tree)
	return tree, nil
}

func (s *productService) Validate(ctx context.Context, req ValidateProductsRequest) ([]model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	found, err := s.products.FindByIDs(ctx, req.IDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	var missing, inactive []string
	valid := make([]model.Product, 0, len(req.IDs))
	for _, id := range req.IDs {
		p, ok := byID[id]
		switch {
		case !ok:
			missing = append(missing, id.String())
		case p.Status != model.ProductActive:
			inactive = append(inactive, id.String())
		default:
			valid = append(valid, p)
		}
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "not found: "+strings.Join(missing, ", "))
	}
	if len(inactive) > 0 {
		problems = append(problems, "not active: "+strings.Join(inactive, ", "))
	}
	if len(problems) > 0 {
		return nil, rpcerr.BadRequest("Some products are not available (%s)", strings.Join(problems, "; "))
	}
	return valid, nil
}
