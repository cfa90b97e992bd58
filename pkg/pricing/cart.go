// Package pricing mirrors the cart arithmetic the storefront applies locally.
// Prices are integer minor units; the subscription discount is applied at
// computation time and never stored pre-discounted.
package pricing

type PurchaseType string

const (
	PurchaseOneTime      PurchaseType = "one-time"
	PurchaseSubscription PurchaseType = "subscription"
)

// SubscriptionDiscount is the flat discount applied to subscription lines.
const SubscriptionDiscount = 0.15

type LineItem struct {
	ProductId          string       `json:"productId"`
	VariantId          string       `json:"variantId"`
	UnitPriceMinorUnit int64        `json:"unitPriceMinorUnits"`
	Quantity           int64        `json:"quantity"`
	PurchaseType       PurchaseType `json:"purchaseType"`
}

// LineSubtotal returns the line total in minor units with the subscription
// discount applied per unit before multiplying by quantity.
func LineSubtotal(item LineItem) int64 {
	unit := item.UnitPriceMinorUnit
	if item.PurchaseType == PurchaseSubscription {
		unit = int64(float64(unit) * (1 - SubscriptionDiscount))
	}
	return unit * item.Quantity
}

// Subtotal sums all line subtotals.
func Subtotal(items []LineItem) int64 {
	var sum int64
	for _, item := range items {
		sum += LineSubtotal(item)
	}
	return sum
}

// Total equals the subtotal: shipping is free and taxes are collected at the
// payment provider, not here.
func Total(items []LineItem) int64 {
	return Subtotal(items)
}
