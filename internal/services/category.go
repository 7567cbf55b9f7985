package service

import (
	"context"
	"database/sql"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	appErrors "github.com/shopstack/storefront-platform/internal/errors"
	"github.com/shopstack/storefront-platform/internal/models"
	repository "github.com/shopstack/storefront-platform/internal/repositories"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, creator uuid.UUID, req *models.CreateCategoryRequest) (*models.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context, page, size int) ([]*models.Category, int, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountCategories(ctx context.Context) (int, error)
}

type categoryService struct {
	repo      repository.CategoryRepository
	sanitizer *bluemonday.Policy
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, creator uuid.UUID, req *models.CreateCategoryRequest) (*models.Category, error) {
	name := s.sanitizer.Sanitize(req.Name)

	existing, err := s.repo.GetCategoryByName(ctx, name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.DatabaseError("Failed to check existing categories").WithError(err)
	}

	if existing != nil {
		return nil, appErrors.DuplicateEntryError("Category with this name already exists")
	}

	category := &models.Category{
		Name:        name,
		Description: s.sanitizer.Sanitize(req.Description),
		CreatedBy:   creator,
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, appErrors.DatabaseError("Failed to create category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Category not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, page, size int) ([]*models.Category, int, error) {
	page, size = models.NormalizePagination(page, size)

	categories, total, err := s.repo.ListCategories(ctx, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to list categories").WithError(err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(size)))

	return categories, totalPages, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = s.sanitizer.Sanitize(*req.Name)
	}

	if req.Description != nil {
		category.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, appErrors.DatabaseError("Failed to update category").WithError(err)
	}

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Category not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete category").WithError(err)
	}

	return nil
}

func (s *categoryService) CountCategories(ctx context.Context) (int, error) {
	total, err := s.repo.CountCategories(ctx)
	if err != nil {
		return 0, appErrors.DatabaseError("Failed to count categories").WithError(err)
	}

	return total, nil
}
