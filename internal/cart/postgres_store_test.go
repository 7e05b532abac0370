package cart

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"checkout-core/internal/database"
	"checkout-core/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresStore_Append(t *testing.T) {
	ctx := context.Background()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cartID := uuid.New()
	store := NewPostgresStore(mock, cartID, zerolog.Nop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cart_items")).
		WithArgs(pgxmock.AnyArg(), cartID, "ELECTRONIC", "Laptop", 1, "1000").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.Append(ctx, model.NewItem(model.ItemTypeElectronic, "Laptop", 1, decimal.NewFromInt(1000)))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Append_RejectsInvalidItem(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock, uuid.New(), zerolog.Nop())

	err = store.Append(context.Background(), model.NewItem(model.ItemTypeOther, "Book", -1, decimal.NewFromInt(20)))
	assert.ErrorIs(t, err, model.ErrInvalidQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Append_DatabaseError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock, uuid.New(), zerolog.Nop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cart_items")).
		WillReturnError(errors.New("connection refused"))

	err = store.Append(context.Background(), model.NewItem(model.ItemTypeOther, "Book", 1, decimal.NewFromInt(20)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert cart item")
}

func TestPostgresStore_Items(t *testing.T) {
	ctx := context.Background()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cartID := uuid.New()
	store := NewPostgresStore(mock, cartID, zerolog.Nop())

	rows := pgxmock.NewRows([]string{"item_type", "name", "quantity", "price_per_unit"}).
		AddRow("OTHER", "Pencil", 5, "1.00").
		AddRow("ELECTRONIC", "Laptop", 1, "1000.50")
	mock.ExpectQuery(regexp.QuoteMeta("FROM cart_items")).
		WithArgs(cartID).
		WillReturnRows(rows)

	items, err := store.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, model.ItemTypeOther, items[0].Type)
	assert.Equal(t, "Pencil", items[0].Name)
	assert.Equal(t, 5, items[0].Quantity)
	assert.True(t, decimal.NewFromInt(1).Equal(items[0].PricePerUnit))
	assert.Equal(t, model.ItemTypeElectronic, items[1].Type)
	assert.True(t, decimal.RequireFromString("1000.5").Equal(items[1].PricePerUnit))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ResetDatabase(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cartID := uuid.New()
	store := NewPostgresStore(mock, cartID, zerolog.Nop())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE cart_id = $1")).
		WithArgs(cartID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	require.NoError(t, store.ResetDatabase(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CloseSharedPool(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock, uuid.New(), zerolog.Nop())

	// A shared pool is left open, so no database call is expected
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.Items(context.Background())
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// setupTestDB creates a PostgreSQL testcontainer with the schema applied.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, database.EnsureSchema(ctx, pool))

	t.Cleanup(func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return pool
}

func TestPostgresStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	pool := setupTestDB(t)
	ctx := context.Background()

	store := NewPostgresStore(pool, uuid.New(), zerolog.Nop())
	other := NewPostgresStore(pool, uuid.New(), zerolog.Nop())
	t.Cleanup(func() {
		_ = store.Close()
		_ = other.Close()
	})

	t.Run("Items keep insertion order", func(t *testing.T) {
		require.NoError(t, store.ResetDatabase(ctx))

		require.NoError(t, store.Append(ctx, model.NewItem(model.ItemTypeOther, "Pencil", 5, decimal.NewFromInt(1))))
		require.NoError(t, store.Append(ctx, model.NewItem(model.ItemTypeOther, "Book", 1, decimal.NewFromInt(15))))
		require.NoError(t, store.Append(ctx, model.NewItem(model.ItemTypeElectronic, "Laptop", 1, decimal.RequireFromString("999.99"))))

		items, err := store.Items(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "Pencil", items[0].Name)
		assert.Equal(t, "Book", items[1].Name)
		assert.Equal(t, "Laptop", items[2].Name)
		assert.True(t, decimal.RequireFromString("999.99").Equal(items[2].PricePerUnit))
	})

	t.Run("Carts are isolated", func(t *testing.T) {
		require.NoError(t, store.ResetDatabase(ctx))
		require.NoError(t, other.ResetDatabase(ctx))

		require.NoError(t, other.Append(ctx, model.NewItem(model.ItemTypeOther, "Book", 1, decimal.NewFromInt(20))))

		items, err := store.Items(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Reset leaves store usable", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, model.NewItem(model.ItemTypeOther, "Eraser", 1, decimal.NewFromInt(2))))
		require.NoError(t, store.ResetDatabase(ctx))

		items, err := store.Items(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)

		require.NoError(t, store.Append(ctx, model.NewItem(model.ItemTypeOther, "Stapler", 1, decimal.NewFromInt(10))))
		items, err = store.Items(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})
}
