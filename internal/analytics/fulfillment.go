package analytics

import (
	"github.com/shopspring/decimal"

	"retail-dashboard/internal/core"
)

// FulfillmentStats summarizes purchase-order completion.
type FulfillmentStats struct {
	Completed int             `json:"completed"`
	Pending   int             `json:"pending"`
	RatePct   decimal.Decimal `json:"rate_pct"`
}

// OrderFulfillment counts completed versus outstanding purchase orders.
// The rate is a percentage rounded to two decimals, zero when there are
// no orders at all.
func OrderFulfillment(orders []core.PurchaseOrder) FulfillmentStats {
	var f FulfillmentStats
	for _, o := range orders {
		if o.Status == core.OrderStatusCompleted {
			f.Completed++
		} else {
			f.Pending++
		}
	}
	if len(orders) > 0 {
		f.RatePct = decimal.NewFromInt(int64(f.Completed)).
			Div(decimal.NewFromInt(int64(len(orders)))).
			Mul(hundred).Round(2)
	}
	return f
}
