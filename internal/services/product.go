package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopstack/storefront-platform/internal/api/middleware"
	"github.com/shopstack/storefront-platform/internal/cache"
	appErrors "github.com/shopstack/storefront-platform/internal/errors"
	"github.com/shopstack/storefront-platform/internal/models"
	repository "github.com/shopstack/storefront-platform/internal/repositories"
)

type ProductService interface {
	CreateProduct(ctx context.Context, creator uuid.UUID, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, page, size int) (*models.ProductPage, error)
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID, page, size int) (*models.ProductPage, error)
	SearchProducts(ctx context.Context, term string, page, size int) (*models.ProductPage, error)
	CountProducts(ctx context.Context) (int, error)
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        cache.Cache
	sanitizer    *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, c cache.Cache) ProductService {
	return &productService{
		repo:         repo,
		categoryRepo: categoryRepo,
		cache:        c,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, creator uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {
	if _, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.BadRequestError("Category does not exist").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to check category").WithError(err)
	}

	product := &models.Product{
		CategoryID:  req.CategoryID,
		Title:       s.sanitizer.Sanitize(req.Title),
		Description: s.sanitizer.Sanitize(req.Description),
		Price:       req.Price,
		Discount:    req.Discount,
		Pictures:    req.Pictures,
		CreatedBy:   creator,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

// GetProductByID reads through the cache. A cache failure falls back to the
// database, so redis being down degrades latency but not correctness.
func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, id.String())

	cached := &models.Product{}

	found, err := s.cache.Get(ctx, key, cached)
	if err != nil {
		logger.Warn("Cache lookup failed", slog.String("key", key), slog.Any("error", err))
	} else if found {
		return cached, nil
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, 0); err != nil {
		logger.Warn("Cache store failed", slog.String("key", key), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetCategoryByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.BadRequestError("Category does not exist").WithError(err)
			}

			return nil, appErrors.DatabaseError("Failed to check category").WithError(err)
		}

		product.CategoryID = *req.CategoryID
	}

	if req.Title != nil {
		product.Title = s.sanitizer.Sanitize(*req.Title)
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Price != nil {
		product.Price = *req.Price
	}

	if req.Discount != nil {
		product.Discount = *req.Discount
	}

	if req.Pictures != nil {
		product.Pictures = req.Pictures
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	// Invalidate so cart pricing sees the new price immediately.
	s.invalidate(ctx, id)

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *productService) ListProducts(ctx context.Context, page, size int) (*models.ProductPage, error) {
	page, size = models.NormalizePagination(page, size)

	products, total, err := s.repo.ListProducts(ctx, page, size)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	return newProductPage(products, total, page, size), nil
}

func (s *productService) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID, page, size int) (*models.ProductPage, error) {
	page, size = models.NormalizePagination(page, size)

	products, total, err := s.repo.ListProductsByCategory(ctx, categoryID, page, size)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to list products").WithError(err)
	}

	return newProductPage(products, total, page, size), nil
}

func (s *productService) SearchProducts(ctx context.Context, term string, page, size int) (*models.ProductPage, error) {
	page, size = models.NormalizePagination(page, size)
	term = s.sanitizer.Sanitize(term)

	products, total, err := s.repo.SearchProducts(ctx, term, page, size)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to search products").WithError(err)
	}

	return newProductPage(products, total, page, size), nil
}

func (s *productService) CountProducts(ctx context.Context) (int, error) {
	total, err := s.repo.CountProducts(ctx)
	if err != nil {
		return 0, appErrors.DatabaseError("Failed to count products").WithError(err)
	}

	return total, nil
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	key := cache.Key(cache.ProductKeyPrefix, id.String())

	if err := s.cache.Delete(ctx, key); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cache invalidation failed", slog.String("key", key), slog.Any("error", err))
	}
}

func newProductPage(products []*models.Product, total, page, size int) *models.ProductPage {
	if products == nil {
		products = make([]*models.Product, 0)
	}

	return &models.ProductPage{
		Products:    products,
		TotalPages:  int(math.Ceil(float64(total) / float64(size))),
		CurrentPage: page,
	}
}
