// Package mocks provides testify doubles for the service interfaces, used by
// the handler tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopstack/storefront-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

type CartService struct {
	mock.Mock
}

func (m *CartService) ViewCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	args := m.Called(ctx, userID)

	view, _ := args.Get(0).(*models.CartView)

	return view, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartView, error) {
	args := m.Called(ctx, userID, req)

	view, _ := args.Get(0).(*models.CartView)

	return view, args.Error(1)
}

func (m *CartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartView, error) {
	args := m.Called(ctx, userID, productID, req)

	view, _ := args.Get(0).(*models.CartView)

	return view, args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartView, error) {
	args := m.Called(ctx, userID, productID)

	view, _ := args.Get(0).(*models.CartView)

	return view, args.Error(1)
}

func (m *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	resp, _ := args.Get(0).(*models.LoginResponse)

	return resp, args.Error(1)
}

func (m *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	user, _ := args.Get(0).(*models.User)

	return user, args.Error(1)
}

type CategoryService struct {
	mock.Mock
}

func (m *CategoryService) CreateCategory(ctx context.Context, creator uuid.UUID, req *models.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, creator, req)

	category, _ := args.Get(0).(*models.Category)

	return category, args.Error(1)
}

func (m *CategoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)

	category, _ := args.Get(0).(*models.Category)

	return category, args.Error(1)
}

func (m *CategoryService) ListCategories(ctx context.Context, page, size int) ([]*models.Category, int, error) {
	args := m.Called(ctx, page, size)

	categories, _ := args.Get(0).([]*models.Category)

	return categories, args.Int(1), args.Error(2)
}

func (m *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.UpdateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, id, req)

	category, _ := args.Get(0).(*models.Category)

	return category, args.Error(1)
}

func (m *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *CategoryService) CountCategories(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

type ProductService struct {
	mock.Mock
}

func (m *ProductService) CreateProduct(ctx context.Context, creator uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, creator, req)

	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)

	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}

func (m *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *ProductService) ListProducts(ctx context.Context, page, size int) (*models.ProductPage, error) {
	args := m.Called(ctx, page, size)

	pageResult, _ := args.Get(0).(*models.ProductPage)

	return pageResult, args.Error(1)
}

func (m *ProductService) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID, page, size int) (*models.ProductPage, error) {
	args := m.Called(ctx, categoryID, page, size)

	pageResult, _ := args.Get(0).(*models.ProductPage)

	return pageResult, args.Error(1)
}

func (m *ProductService) SearchProducts(ctx context.Context, term string, page, size int) (*models.ProductPage, error) {
	args := m.Called(ctx, term, page, size)

	pageResult, _ := args.Get(0).(*models.ProductPage)

	return pageResult, args.Error(1)
}

func (m *ProductService) CountProducts(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

// Catalog is a double for the narrow product lookup the cart service uses.
type Catalog struct {
	mock.Mock
}

func (m *Catalog) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	product, _ := args.Get(0).(*models.Product)

	return product, args.Error(1)
}
