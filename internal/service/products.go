package service

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"orderhub/internal/errs"
	"orderhub/internal/model"
	"orderhub/internal/repository"
)

// ProductService manages the catalog. Creation is admin-only; stock is stored
// but never reserved or decremented by order placement.
type ProductService struct {
	products repository.ProductRepository
	users    repository.UserRepository
	roles    *RoleService
}

// NewProductService constructs ProductService with required dependencies.
func NewProductService(products repository.ProductRepository, users repository.UserRepository, roles *RoleService) *ProductService {
	return &ProductService{products: products, users: users, roles: roles}
}

// CreateProductInput carries the fields of a product creation request.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
}

// Create adds a catalog product owned by the acting admin.
func (s *ProductService) Create(ctx context.Context, actorID uuid.UUID, in CreateProductInput) (*model.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, errs.ErrInvalidInput
	}
	if !in.Price.IsPositive() || in.Stock <= 0 {
		return nil, errs.ErrInvalidInput
	}

	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	isAdmin, err := s.roles.Verify(ctx, actorID, AdminRole)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, errs.ErrUnauthorized
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.Product{
		ID:          id,
		OwnerID:     actorID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByName looks up a product by its name.
func (s *ProductService) GetByName(ctx context.Context, name string) (*model.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.ErrInvalidInput
	}
	return s.products.GetByName(ctx, name)
}

// List returns one page of the catalog.
func (s *ProductService) List(ctx context.Context, page, size int) (model.Page[model.Product], error) {
	page, size = normalizePage(page, size)
	products, total, err := s.products.List(ctx, page, size)
	if err != nil {
		return model.Page[model.Product]{}, err
	}
	return model.Page[model.Product]{Items: products, Page: page, Size: size, Total: total}, nil
}
