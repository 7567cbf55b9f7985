// Package pricing holds the pure price computations the cart engine consumes.
package pricing

import "math"

// DiscountedUnitPrice applies a percentage discount to a unit price.
// Discount is expected in [0, 100]; the catalog boundary validates that
// range, values are passed through arithmetically here.
func DiscountedUnitPrice(price, discount float64) float64 {
	return price - price*(discount/100)
}

// LineTotal is the discounted unit price multiplied by the quantity.
func LineTotal(price, discount float64, quantity int) float64 {
	return DiscountedUnitPrice(price, discount) * float64(quantity)
}

// Round2 rounds a monetary value to two decimal places. Only displayed
// values are rounded; aggregation always runs on the raw figures.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
