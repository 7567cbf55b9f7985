package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	repository "github.com/shopstack/storefront-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartRepoTest(t *testing.T) (repository.CartRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewCartRepo(db)
	require.NotNil(t, repo, "NewCartRepo should return a non-nil repository")

	return repo, mock
}

func TestGetOrCreateCart(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	userID := uuid.New()
	cartID := uuid.New()
	now := time.Now()

	expectedSQL := `INSERT INTO carts \(id, user_id, created_at, updated_at\)`

	t.Run("Success - Returns The Cart Row", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).
			WithArgs(sqlmock.AnyArg(), userID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}).
				AddRow(cartID, userID, now, now))

		cart, err := repo.GetOrCreateCart(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, cartID, cart.ID)
		assert.Equal(t, userID, cart.UserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		dbError := errors.New("connection refused")

		mock.ExpectQuery(expectedSQL).
			WithArgs(sqlmock.AnyArg(), userID).
			WillReturnError(dbError)

		cart, err := repo.GetOrCreateCart(ctx, userID)

		assert.Error(t, err)
		assert.Nil(t, cart)
		assert.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetItems(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	cartID := uuid.New()
	firstProduct := uuid.New()
	secondProduct := uuid.New()
	now := time.Now()

	expectedSQL := regexp.QuoteMeta(`
		SELECT product_id, quantity, added_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY added_at, product_id
	`)

	t.Run("Success - Items In Insertion Order", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "added_at"}).
				AddRow(firstProduct, 2, now.Add(-time.Minute)).
				AddRow(secondProduct, 1, now))

		items, err := repo.GetItems(ctx, cartID)

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, firstProduct, items[0].ProductID)
		assert.Equal(t, 2, items[0].Quantity)
		assert.Equal(t, secondProduct, items[1].ProductID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Empty Cart", func(t *testing.T) {
		mock.ExpectQuery(expectedSQL).
			WithArgs(cartID).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "added_at"}))

		items, err := repo.GetItems(ctx, cartID)

		require.NoError(t, err)
		assert.Empty(t, items)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpsertItem(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	cartID := uuid.New()
	productID := uuid.New()

	expectedSQL := regexp.QuoteMeta(`
		INSERT INTO cart_items (cart_id, product_id, quantity, added_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs(cartID, productID, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpsertItem(ctx, cartID, productID, 3)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		dbError := errors.New("deadlock detected")

		mock.ExpectExec(expectedSQL).
			WithArgs(cartID, productID, 1).
			WillReturnError(dbError)

		err := repo.UpsertItem(ctx, cartID, productID, 1)

		assert.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetItemQuantity(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	cartID := uuid.New()
	productID := uuid.New()

	expectedSQL := regexp.QuoteMeta(`
		UPDATE cart_items
		SET quantity = $3
		WHERE cart_id = $1 AND product_id = $2
	`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs(cartID, productID, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetItemQuantity(ctx, cartID, productID, 5)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - No Matching Line Item", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs(cartID, productID, 5).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetItemQuantity(ctx, cartID, productID, 5)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRemoveItem(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	cartID := uuid.New()
	productID := uuid.New()

	expectedSQL := regexp.QuoteMeta(`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`)

	t.Run("Success - Absent Item Is Not An Error", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs(cartID, productID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveItem(ctx, cartID, productID)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClearItems(t *testing.T) {
	repo, mock := setupCartRepoTest(t)
	ctx := t.Context()

	cartID := uuid.New()

	expectedSQL := regexp.QuoteMeta(`DELETE FROM cart_items WHERE cart_id = $1`)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(expectedSQL).
			WithArgs(cartID).
			WillReturnResult(sqlmock.NewResult(0, 4))

		err := repo.ClearItems(ctx, cartID)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		dbError := errors.New("connection reset")

		mock.ExpectExec(expectedSQL).
			WithArgs(cartID).
			WillReturnError(dbError)

		err := repo.ClearItems(ctx, cartID)

		assert.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
