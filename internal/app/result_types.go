package app

import (
	"time"

	"retail-dashboard/internal/analytics"
	"retail-dashboard/internal/core"
)

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// SaleListResult is returned by ListSales.
type SaleListResult struct {
	Sales []core.Sale `json:"sales"`
}

// OrderListResult is returned by ListPurchaseOrders.
type OrderListResult struct {
	Orders []core.PurchaseOrder `json:"orders"`
}

// DashboardResult is returned by GetDashboard. GeneratedAt is the instant
// every time-windowed metric in the payload was anchored to.
type DashboardResult struct {
	Dashboard   analytics.Dashboard `json:"dashboard"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// ForecastResult is returned by GetForecast.
type ForecastResult struct {
	Forecast    analytics.Forecast `json:"forecast"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// WeeklySeriesResult is returned by GetWeeklySeries.
type WeeklySeriesResult struct {
	Buckets     []analytics.WeekBucket `json:"buckets"`
	GeneratedAt time.Time              `json:"generated_at"`
}
