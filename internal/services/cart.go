package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopstack/storefront-platform/internal/api/middleware"
	appErrors "github.com/shopstack/storefront-platform/internal/errors"
	"github.com/shopstack/storefront-platform/internal/models"
	"github.com/shopstack/storefront-platform/internal/pricing"
	repository "github.com/shopstack/storefront-platform/internal/repositories"
)

// Catalog is the narrow product lookup the cart needs. The product service
// satisfies it.
type Catalog interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type CartService interface {
	ViewCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartView, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartView, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	repo    repository.CartRepository
	catalog Catalog
}

func NewCartService(repo repository.CartRepository, catalog Catalog) CartService {
	return &cartService{repo: repo, catalog: catalog}
}

// ViewCart prices the cart against the current catalog. The stored cart holds
// only product references and quantities, so a price or discount change is
// reflected the next time anyone looks.
func (s *cartService) ViewCart(ctx context.Context, userID uuid.UUID) (*models.CartView, error) {
	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	return s.buildView(ctx, cart.ID)
}

// AddItem merges the requested quantity into any existing line for the same
// product. Two adds of the same product never produce two lines.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.CartView, error) {
	if _, err := s.catalog.GetProductByID(ctx, req.ProductID); err != nil {
		if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeNotFound {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, err
	}

	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if err := s.repo.UpsertItem(ctx, cart.ID, req.ProductID, req.Quantity); err != nil {
		return nil, appErrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	return s.buildView(ctx, cart.ID)
}

// UpdateQuantity replaces the stored quantity outright, it does not add to it.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, req *models.UpdateQuantityRequest) (*models.CartView, error) {
	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if err := s.repo.SetItemQuantity(ctx, cart.ID, productID, req.Quantity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Item not found in the cart").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return s.buildView(ctx, cart.ID)
}

// RemoveItem succeeds whether or not the product is in the cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.CartView, error) {
	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, appErrors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return s.buildView(ctx, cart.ID)
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return appErrors.DatabaseError("Failed to load cart").WithError(err)
	}

	if err := s.repo.ClearItems(ctx, cart.ID); err != nil {
		return appErrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}

// buildView joins the stored line items with the catalog. Items whose product
// no longer exists are skipped rather than failing the whole view. Rounding
// happens once per presented figure, after aggregation, so the grand total is
// the rounded sum of unrounded line totals.
func (s *cartService) buildView(ctx context.Context, cartID uuid.UUID) (*models.CartView, error) {
	logger := middleware.LoggerFromContext(ctx)

	storedItems, err := s.repo.GetItems(ctx, cartID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to load cart items").WithError(err)
	}

	items := make([]models.PricedLineItem, 0, len(storedItems))

	var total float64

	for _, stored := range storedItems {
		product, err := s.catalog.GetProductByID(ctx, stored.ProductID)
		if err != nil {
			if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeNotFound {
				logger.Debug("Skipping cart item with missing product", slog.String("productId", stored.ProductID.String()))

				continue
			}

			return nil, appErrors.DatabaseError("Failed to price cart").WithError(err)
		}

		unitPrice := pricing.DiscountedUnitPrice(product.Price, product.Discount)
		lineTotal := pricing.LineTotal(product.Price, product.Discount, stored.Quantity)
		total += lineTotal

		items = append(items, models.PricedLineItem{
			Product: models.PricedProduct{
				ID:       product.ID,
				Title:    product.Title,
				Price:    product.Price,
				Discount: product.Discount,
				Picture:  product.Thumbnail(),
			},
			Quantity:  stored.Quantity,
			UnitPrice: pricing.Round2(unitPrice),
			Total:     pricing.Round2(lineTotal),
		})
	}

	return &models.CartView{
		Items: items,
		Total: pricing.Round2(total),
	}, nil
}
