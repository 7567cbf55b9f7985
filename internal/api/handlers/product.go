package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopstack/storefront-platform/internal/api/middleware"
	appErrors "github.com/shopstack/storefront-platform/internal/errors"
	"github.com/shopstack/storefront-platform/internal/models"
	service "github.com/shopstack/storefront-platform/internal/services"
	"github.com/shopstack/storefront-platform/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CreateProductRequest
		if !parseAndValidate(w, r, &req, h.validator) {
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		product, err := h.productService.CreateProduct(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Product creation failed", slog.String("title", req.Title), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Product created", slog.String("productId", product.ID.String()))
		response.WriteJson(w, http.StatusCreated, response.APIResponse{Success: true, Data: product})
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, response.APIResponse{Success: true, Data: product})
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		var req models.UpdateProductRequest
		if !parseAndValidate(w, r, &req, h.validator) {
			return
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Product updated", slog.String("productId", id.String()))
		response.WriteJson(w, http.StatusOK, response.APIResponse{Success: true, Data: product})
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Product deleted", slog.String("productId", id.String()))
		response.WriteJson(w, http.StatusOK, response.APIResponse{Success: true, Data: map[string]string{"message": "deleted"}})
	}
}

// ListProducts serves the paginated catalog. A category query parameter
// narrows the listing, a search parameter switches to a title and
// description match.
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		page, _ := strconv.Atoi(query.Get("page"))
		size, _ := strconv.Atoi(query.Get("pageSize"))

		var (
			result *models.ProductPage
			err    error
		)

		switch {
		case query.Get("search") != "":
			result, err = h.productService.SearchProducts(r.Context(), query.Get("search"), page, size)
		case query.Get("category") != "":
			var categoryID uuid.UUID

			categoryID, err = uuid.Parse(query.Get("category"))
			if err != nil {
				response.Error(w, appErrors.BadRequestError("Invalid category").WithError(err))

				return
			}

			result, err = h.productService.ListProductsByCategory(r.Context(), categoryID, page, size)
		default:
			result, err = h.productService.ListProducts(r.Context(), page, size)
		}

		if err != nil {
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, response.APIResponse{Success: true, Data: result})
	}
}

func (h *ProductHandler) CountProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := h.productService.CountProducts(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, response.APIResponse{Success: true, Data: map[string]int{"count": total}})
	}
}
