package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"orderhub/internal/errs"
)

func newProductService(users *fakeUsers, products *fakeProducts, roles *fakeRoles) *ProductService {
	return NewProductService(products, users, NewRoleService(users, roles))
}

func TestCreateProduct_AdminOnly(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	roles := newFakeRoles("USER", "ADMIN")
	products := newFakeProducts()
	roleSvc := NewRoleService(users, roles)
	s := NewProductService(products, users, roleSvc)
	ctx := context.Background()

	adminID := addUser(users, "admin@example.com")
	userID := addUser(users, "user@example.com")
	require.NoError(t, roleSvc.Associate(ctx, adminID, "ADMIN"))

	in := CreateProductInput{
		Name:        "widget",
		Description: "a widget",
		Price:       decimal.RequireFromString("9.99"),
		Stock:       5,
	}

	_, err := s.Create(ctx, userID, in)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	p, err := s.Create(ctx, adminID, in)
	require.NoError(t, err)
	require.Equal(t, adminID, p.OwnerID)
	require.True(t, p.Price.Equal(in.Price))
}

func TestCreateProduct_Validation(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	roles := newFakeRoles("USER", "ADMIN")
	s := newProductService(users, newFakeProducts(), roles)
	ctx := context.Background()
	adminID := addUser(users, "admin@example.com")

	cases := []CreateProductInput{
		{Name: "", Description: "d", Price: decimal.NewFromInt(1), Stock: 1},
		{Name: "n", Description: " ", Price: decimal.NewFromInt(1), Stock: 1},
		{Name: "n", Description: "d", Price: decimal.Zero, Stock: 1},
		{Name: "n", Description: "d", Price: decimal.NewFromInt(-1), Stock: 1},
		{Name: "n", Description: "d", Price: decimal.NewFromInt(1), Stock: 0},
	}
	for _, in := range cases {
		_, err := s.Create(ctx, adminID, in)
		require.ErrorIs(t, err, errs.ErrInvalidInput, "input %+v must be rejected", in)
	}
}

func TestCreateProduct_DuplicateNamePerOwner(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	roles := newFakeRoles("USER", "ADMIN")
	products := newFakeProducts()
	roleSvc := NewRoleService(users, roles)
	s := NewProductService(products, users, roleSvc)
	ctx := context.Background()
	adminID := addUser(users, "admin@example.com")
	require.NoError(t, roleSvc.Associate(ctx, adminID, "ADMIN"))

	in := CreateProductInput{Name: "widget", Description: "d", Price: decimal.NewFromInt(2), Stock: 3}
	_, err := s.Create(ctx, adminID, in)
	require.NoError(t, err)

	_, err = s.Create(ctx, adminID, in)
	require.ErrorIs(t, err, errs.ErrDuplicatedResource)
}

func TestGetProductByName(t *testing.T) {
	t.Parallel()
	p1 := testProduct("widget", "10.00")
	users := newFakeUsers()
	s := newProductService(users, newFakeProducts(p1), newFakeRoles("USER"))
	ctx := context.Background()

	got, err := s.GetByName(ctx, "widget")
	require.NoError(t, err)
	require.Equal(t, p1.ID, got.ID)

	_, err = s.GetByName(ctx, "missing")
	require.ErrorIs(t, err, errs.ErrProductNotFound)

	_, err = s.GetByName(ctx, "  ")
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}
