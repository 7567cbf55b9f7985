package pricing_test

import (
	"testing"

	"github.com/shopstack/storefront-platform/internal/pricing"
	"github.com/stretchr/testify/assert"
)

func TestDiscountedUnitPrice(t *testing.T) {
	assert.InDelta(t, 45.0, pricing.DiscountedUnitPrice(50, 10), 1e-9)
	assert.InDelta(t, 100.0, pricing.DiscountedUnitPrice(100, 0), 1e-9)
	assert.InDelta(t, 0.0, pricing.DiscountedUnitPrice(100, 100), 1e-9)
	assert.InDelta(t, 79.992, pricing.DiscountedUnitPrice(88.88, 10), 1e-9)
}

func TestLineTotal(t *testing.T) {
	assert.InDelta(t, 90.0, pricing.LineTotal(50, 10, 2), 1e-9)
	assert.InDelta(t, 225.0, pricing.LineTotal(50, 10, 5), 1e-9)
	assert.InDelta(t, 0.0, pricing.LineTotal(0, 0, 3), 1e-9)
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 79.99, pricing.Round2(79.992), 1e-9)
	assert.InDelta(t, 80.0, pricing.Round2(79.996), 1e-9)
	assert.InDelta(t, 1.0, pricing.Round2(0.999), 1e-9)
}
