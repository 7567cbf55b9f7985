package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopstack/storefront-platform/internal/api/middleware"
	appErrors "github.com/shopstack/storefront-platform/internal/errors"
	"github.com/shopstack/storefront-platform/internal/models"
	service "github.com/shopstack/storefront-platform/internal/services"
	"github.com/shopstack/storefront-platform/internal/utils/response"
)

type CategoryHandler struct {
	categoryService service.CategoryService
	validator       *validator.Validate
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, validator: validator.New()}
}

func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.CreateCategoryRequest
		if !parseAndValidate(w, r, &req, h.validator) {
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		category, err := h.categoryService.CreateCategory(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Warn("Category creation failed", slog.String("name", req.Name), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Category created", slog.String("categoryId", category.ID.String()))
		response.WriteJson(w, http.StatusCreated, response.APIResponse{Success: true, Data: category})
	}
}

func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		category, err := h.categoryService.GetCategoryByID(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, response.APIResponse{Success: true, Data: category})
	}
}

func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

		categories, totalPages, err := h.categoryService.ListCategories(r.Context(), page, size)
		if err != nil {
			response.Error(w, err)

			return
		}

		if categories == nil {
			categories = make([]*models.Category, 0)
		}

		response.WriteJson(w, http.StatusOK, response.APIResponse{Success: true, Data: map[string]any{
			"categories":  categories,
			"total_pages": totalPages,
		}})
	}
}

func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		var req models.UpdateCategoryRequest
		if !parseAndValidate(w, r, &req, h.validator) {
			return
		}

		category, err := h.categoryService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, response.APIResponse{Success: true, Data: category})
	}
}

func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}

		if err := h.categoryService.DeleteCategory(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Category deleted", slog.String("categoryId", id.String()))
		response.WriteJson(w, http.StatusOK, response.APIResponse{Success: true, Data: map[string]string{"message": "deleted"}})
	}
}

func (h *CategoryHandler) CountCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, err := h.categoryService.CountCategories(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, response.APIResponse{Success: true, Data: map[string]int{"count": total}})
	}
}
