package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopstack/storefront-platform/internal/api/handlers"
	appErrors "github.com/shopstack/storefront-platform/internal/errors"
	"github.com/shopstack/storefront-platform/internal/models"
	"github.com/shopstack/storefront-platform/internal/services/mocks"
	"github.com/shopstack/storefront-platform/internal/testutils"
	"github.com/shopstack/storefront-platform/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestViewCartHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := &mocks.CartService{}
		handler := handlers.NewCartHandler(mockService)

		view := &models.CartView{
			Items: []models.PricedLineItem{},
			Total: 0,
		}

		mockService.On("ViewCart", mock.Anything, userID).Return(view, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/cart", nil, userID, nil)
		rr := httptest.NewRecorder()

		handler.ViewCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.CartView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.NotNil(t, got.Items)
		assert.Equal(t, 0.0, got.Total)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - No Claims", func(t *testing.T) {
		mockService := &mocks.CartService{}
		handler := handlers.NewCartHandler(mockService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/cart", nil, nil)
		rr := httptest.NewRecorder()

		handler.ViewCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockService.AssertNotCalled(t, "ViewCart", mock.Anything, mock.Anything)
	})
}

func TestAddItemHandler(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := &mocks.CartService{}
		handler := handlers.NewCartHandler(mockService)

		view := &models.CartView{
			Items: []models.PricedLineItem{
				{
					Product:   models.PricedProduct{ID: productID, Title: "Desk Lamp", Price: 50, Discount: 10},
					Quantity:  2,
					UnitPrice: 45,
					Total:     90,
				},
			},
			Total: 90,
		}

		mockService.On("AddItem", mock.Anything, userID, mock.AnythingOfType("*models.AddItemRequest")).
			Return(view, nil).Once()

		body, _ := json.Marshal(models.AddItemRequest{ProductID: productID, Quantity: 2})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/cart/add", bytes.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.CartView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, 90.0, got.Total)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Zero Quantity Rejected", func(t *testing.T) {
		mockService := &mocks.CartService{}
		handler := handlers.NewCartHandler(mockService)

		body, _ := json.Marshal(map[string]any{"product_id": productID, "quantity": 0})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/cart/add", bytes.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		mockService := &mocks.CartService{}
		handler := handlers.NewCartHandler(mockService)

		mockService.On("AddItem", mock.Anything, userID, mock.AnythingOfType("*models.AddItemRequest")).
			Return(nil, appErrors.NotFoundError("Product not found")).Once()

		body, _ := json.Marshal(models.AddItemRequest{ProductID: productID, Quantity: 1})
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/cart/add", bytes.NewReader(body), userID, nil)
		rr := httptest.NewRecorder()

		handler.AddItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestUpdateQuantityHandler(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := &mocks.CartService{}
		handler := handlers.NewCartHandler(mockService)

		view := &models.CartView{
			Items: []models.PricedLineItem{
				{
					Product:   models.PricedProduct{ID: productID, Title: "Desk Lamp", Price: 50, Discount: 10},
					Quantity:  5,
					UnitPrice: 45,
					Total:     225,
				},
			},
			Total: 225,
		}

		mockService.On("UpdateQuantity", mock.Anything, userID, productID, mock.AnythingOfType("*models.UpdateQuantityRequest")).
			Return(view, nil).Once()

		body, _ := json.Marshal(models.UpdateQuantityRequest{Quantity: 5})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/update/"+productID.String(), bytes.NewReader(body), userID,
			map[string]string{"productId": productID.String()})
		rr := httptest.NewRecorder()

		handler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.CartView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, 225.0, got.Total)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Malformed Product ID", func(t *testing.T) {
		mockService := &mocks.CartService{}
		handler := handlers.NewCartHandler(mockService)

		body, _ := json.Marshal(models.UpdateQuantityRequest{Quantity: 5})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/cart/update/not-a-uuid", bytes.NewReader(body), userID,
			map[string]string{"productId": "not-a-uuid"})
		rr := httptest.NewRecorder()

		handler.UpdateQuantity().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRemoveItemHandler(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := &mocks.CartService{}
		handler := handlers.NewCartHandler(mockService)

		view := &models.CartView{Items: []models.PricedLineItem{}, Total: 0}

		mockService.On("RemoveItem", mock.Anything, userID, productID).Return(view, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/cart/remove/"+productID.String(), nil, userID,
			map[string]string{"productId": productID.String()})
		rr := httptest.NewRecorder()

		handler.RemoveItem().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestClearCartHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := &mocks.CartService{}
		handler := handlers.NewCartHandler(mockService)

		mockService.On("ClearCart", mock.Anything, userID).Return(nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/cart/clear", nil, userID, nil)
		rr := httptest.NewRecorder()

		handler.ClearCart().ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "cleared", got["message"])
		mockService.AssertExpectations(t)
	})
}
