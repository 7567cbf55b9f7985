package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopstack/storefront-platform/internal/cache"
	appErrors "github.com/shopstack/storefront-platform/internal/errors"
	"github.com/shopstack/storefront-platform/internal/models"
	repository "github.com/shopstack/storefront-platform/internal/repositories"
	service "github.com/shopstack/storefront-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-process cache.Cache for exercising the read-through
// and invalidation paths without redis.
type memoryCache struct {
	entries map[string]any
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]any)}
}

func (c *memoryCache) Get(_ context.Context, key string, value any) (bool, error) {
	stored, ok := c.entries[key]
	if !ok {
		return false, nil
	}

	if product, ok := stored.(*models.Product); ok {
		if dest, ok := value.(*models.Product); ok {
			*dest = *product

			return true, nil
		}
	}

	return false, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.entries[key] = value

	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)

	return nil
}

func (c *memoryCache) Close() error { return nil }

func TestGetProductByID(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	stored := &models.Product{ID: productID, Title: "Desk Lamp", Price: 50, Discount: 10}

	t.Run("Success - Second Read Comes From Cache", func(t *testing.T) {
		mockRepo := repository.NewMockProductRepository()
		mockCategoryRepo := repository.NewMockCategoryRepository()
		c := newMemoryCache()
		productService := service.NewProductService(mockRepo, mockCategoryRepo, c)

		mockRepo.On("GetProductByID", ctx, productID).Return(stored, nil).Once()

		first, err := productService.GetProductByID(ctx, productID)
		require.NoError(t, err)

		second, err := productService.GetProductByID(ctx, productID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		mockRepo.AssertNumberOfCalls(t, "GetProductByID", 1)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		mockRepo := repository.NewMockProductRepository()
		mockCategoryRepo := repository.NewMockCategoryRepository()
		productService := service.NewProductService(mockRepo, mockCategoryRepo, newMemoryCache())

		mockRepo.On("GetProductByID", ctx, productID).Return(nil, sql.ErrNoRows).Once()

		product, err := productService.GetProductByID(ctx, productID)

		assert.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	productID := uuid.New()

	t.Run("Success - Update Invalidates The Cache", func(t *testing.T) {
		mockRepo := repository.NewMockProductRepository()
		mockCategoryRepo := repository.NewMockCategoryRepository()
		c := newMemoryCache()
		productService := service.NewProductService(mockRepo, mockCategoryRepo, c)

		original := &models.Product{ID: productID, Title: "Desk Lamp", Price: 100, Discount: 0}
		updatedPrice := 80.0

		mockRepo.On("GetProductByID", ctx, productID).Return(original, nil)
		mockRepo.On("UpdateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		// Warm the cache, then update the price.
		_, err := productService.GetProductByID(ctx, productID)
		require.NoError(t, err)

		updated, err := productService.UpdateProduct(ctx, productID, &models.UpdateProductRequest{Price: &updatedPrice})

		require.NoError(t, err)
		assert.Equal(t, 80.0, updated.Price)
		assert.Empty(t, c.entries, "cache entry must be gone after an update")
	})

	t.Run("Failure - Unknown Category", func(t *testing.T) {
		mockRepo := repository.NewMockProductRepository()
		mockCategoryRepo := repository.NewMockCategoryRepository()
		productService := service.NewProductService(mockRepo, mockCategoryRepo, newMemoryCache())

		badCategory := uuid.New()

		mockRepo.On("GetProductByID", ctx, productID).
			Return(&models.Product{ID: productID}, nil).Once()
		mockCategoryRepo.On("GetCategoryByID", ctx, badCategory).Return(nil, sql.ErrNoRows).Once()

		product, err := productService.UpdateProduct(ctx, productID, &models.UpdateProductRequest{CategoryID: &badCategory})

		assert.Error(t, err)
		assert.Nil(t, product)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeBadRequest, appErr.Code)
	})
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	creator := uuid.New()
	categoryID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := repository.NewMockProductRepository()
		mockCategoryRepo := repository.NewMockCategoryRepository()
		productService := service.NewProductService(mockRepo, mockCategoryRepo, newMemoryCache())

		mockCategoryRepo.On("GetCategoryByID", ctx, categoryID).
			Return(&models.Category{ID: categoryID, Name: "Lighting"}, nil).Once()
		mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		product, err := productService.CreateProduct(ctx, creator, &models.CreateProductRequest{
			CategoryID: categoryID,
			Title:      "Desk Lamp",
			Price:      50,
			Discount:   10,
		})

		require.NoError(t, err)
		assert.Equal(t, "Desk Lamp", product.Title)
		assert.Equal(t, creator, product.CreatedBy)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Cached Key Uses Product Prefix", func(t *testing.T) {
		assert.Equal(t, "product:"+categoryID.String(), cache.Key(cache.ProductKeyPrefix, categoryID.String()))
	})
}
