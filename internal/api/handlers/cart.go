package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopstack/storefront-platform/internal/api/middleware"
	appErrors "github.com/shopstack/storefront-platform/internal/errors"
	"github.com/shopstack/storefront-platform/internal/models"
	service "github.com/shopstack/storefront-platform/internal/services"
	"github.com/shopstack/storefront-platform/internal/utils/response"
)

// CartHandler exposes the session cart of the authenticated user. All routes
// sit behind the auth middleware, so the owner identity is always the one in
// the token claims.
type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) ViewCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		view, err := h.cartService.ViewCart(r.Context(), claims.UserID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, view)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.AddItemRequest
		if !parseAndValidate(w, r, &req, h.validator) {
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		view, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart",
				slog.String("productId", req.ProductID.String()),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Item added to cart",
			slog.String("productId", req.ProductID.String()),
			slog.Int("quantity", req.Quantity))
		response.WriteJson(w, http.StatusOK, view)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		productID, ok := pathUUID(w, r, "productId")
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !parseAndValidate(w, r, &req, h.validator) {
			return
		}

		view, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, productID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, view)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		productID, ok := pathUUID(w, r, "productId")
		if !ok {
			return
		}

		view, err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, view)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, map[string]string{"message": "cleared"})
	}
}
