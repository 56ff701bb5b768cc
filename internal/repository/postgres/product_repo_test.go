package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"orderhub/internal/errs"
	"orderhub/internal/model"
)

func TestProductRepo_Create_DuplicateName(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProductRepo(db)

	p := &model.Product{
		ID:          uuid.Must(uuid.NewV4()),
		OwnerID:     uuid.Must(uuid.NewV4()),
		Name:        "widget",
		Description: "a widget",
		Price:       decimal.RequireFromString("9.99"),
		Stock:       5,
	}

	mock.ExpectExec(`INSERT INTO products`).
		WithArgs(p.ID, p.OwnerID, p.Name, p.Description, p.Price, p.Stock).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := r.Create(context.Background(), p)
	require.ErrorIs(t, err, errs.ErrDuplicatedResource)
}

func TestProductRepo_GetByName_OldestRowWins(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProductRepo(db)

	id := uuid.Must(uuid.NewV4())
	owner := uuid.Must(uuid.NewV4())
	now := time.Now()
	cols := []string{"id", "owner_id", "name", "description", "price", "stock", "created_at", "updated_at"}

	// the same name can exist under different owners; the query must pick
	// one row deterministically
	mock.ExpectQuery(`SELECT id, owner_id, name, description, price, stock, created_at, updated_at\s+FROM products WHERE name=\$1\s+ORDER BY created_at, id\s+LIMIT 1`).
		WithArgs("widget").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(id, owner, "widget", "a widget", decimal.RequireFromString("10.00"), 5, now, now))

	p, err := r.GetByName(context.Background(), "widget")
	require.NoError(t, err)
	require.Equal(t, id, p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_GetByIDs(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProductRepo(db)

	id1 := uuid.Must(uuid.NewV4())
	id2 := uuid.Must(uuid.NewV4())
	owner := uuid.Must(uuid.NewV4())
	now := time.Now()
	cols := []string{"id", "owner_id", "name", "description", "price", "stock", "created_at", "updated_at"}

	// id2 is unknown: only one row comes back, callers compare counts
	mock.ExpectQuery(`SELECT id, owner_id, name, description, price, stock, created_at, updated_at\s+FROM products WHERE id = ANY\(\$1\)`).
		WithArgs([]uuid.UUID{id1, id2}).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(id1, owner, "widget", "a widget", decimal.RequireFromString("10.00"), 5, now, now))

	products, err := r.GetByIDs(context.Background(), []uuid.UUID{id1, id2})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, id1, products[0].ID)
}

func TestProductRepo_List(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewProductRepo(db)

	id := uuid.Must(uuid.NewV4())
	owner := uuid.Must(uuid.NewV4())
	now := time.Now()
	cols := []string{"id", "owner_id", "name", "description", "price", "stock", "created_at", "updated_at"}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))
	mock.ExpectQuery(`SELECT id, owner_id, name, description, price, stock, created_at, updated_at\s+FROM products`).
		WithArgs(10, 10).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(id, owner, "widget", "a widget", decimal.RequireFromString("10.00"), 5, now, now))

	products, total, err := r.List(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Equal(t, int64(42), total)
	require.Len(t, products, 1)
}
