package app

import (
	"context"

	"retail-dashboard/internal/core"
)

// ApplicationService is the single interface all UI adapters call. It
// decouples presentation from business logic. Implementations must contain
// no display logic of any kind.
type ApplicationService interface {
	// CreateProduct adds a product to the catalog.
	CreateProduct(ctx context.Context, in core.ProductInput) (*core.Product, error)

	// ListProducts returns the full catalog, newest first.
	ListProducts(ctx context.Context) (*ProductListResult, error)

	// GetProduct returns a single product by ID.
	GetProduct(ctx context.Context, id int) (*core.Product, error)

	// UpdateProduct replaces a product's fields.
	UpdateProduct(ctx context.Context, id int, in core.ProductInput) (*core.Product, error)

	// DeleteProduct removes a product. Historical sale and order lines keep
	// the captured product name; their product reference is cleared.
	DeleteProduct(ctx context.Context, id int) error

	// RecordSale writes a sale with its lines and decrements stock for
	// every line that references a cataloged product.
	RecordSale(ctx context.Context, in core.SaleInput) (*core.Sale, error)

	// ListSales returns all sales with resolved lines, newest first.
	ListSales(ctx context.Context) (*SaleListResult, error)

	// GetSale returns a single sale with its lines.
	GetSale(ctx context.Context, id int) (*core.Sale, error)

	// DeleteSale removes a sale record without restoring stock.
	DeleteSale(ctx context.Context, id int) error

	// CreatePurchaseOrder records a pending order to a supplier.
	CreatePurchaseOrder(ctx context.Context, in core.PurchaseOrderInput) (*core.PurchaseOrder, error)

	// ListPurchaseOrders returns purchase orders newest first, optionally
	// filtered by status.
	ListPurchaseOrders(ctx context.Context, status *core.OrderStatus) (*OrderListResult, error)

	// GetPurchaseOrder returns a single purchase order with its lines.
	GetPurchaseOrder(ctx context.Context, id int) (*core.PurchaseOrder, error)

	// CompletePurchaseOrder marks a pending order received and increments
	// stock for its cataloged lines.
	CompletePurchaseOrder(ctx context.Context, id int) (*core.PurchaseOrder, error)

	// DeletePurchaseOrder removes a pending order. Completed orders are
	// immutable history.
	DeletePurchaseOrder(ctx context.Context, id int) error

	// GetDashboard computes every report metric from a fresh snapshot of
	// the catalog, sales, and purchase orders.
	GetDashboard(ctx context.Context) (*DashboardResult, error)

	// GetForecast returns the smoothed revenue history and projection.
	GetForecast(ctx context.Context) (*ForecastResult, error)

	// GetWeeklySeries returns the trailing-quarter purchases-vs-sales chart feed.
	GetWeeklySeries(ctx context.Context) (*WeeklySeriesResult, error)
}
