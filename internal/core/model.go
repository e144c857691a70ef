package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Price is the current unit list price and
// Stock the on-hand quantity; both are owned by the catalog screens and
// never mutated by reporting code.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Sale is a recorded sale header with its resolved line items.
// Gain is the profit captured at entry time (revenue minus cost of the
// lines as priced then); it is stored, not recomputed on read.
type Sale struct {
	ID          int             `json:"id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Gain        decimal.Decimal `json:"gain"`
	SaleDate    time.Time       `json:"sale_date"`
	CreatedAt   time.Time       `json:"created_at"`
	Lines       []SaleLine      `json:"products"`
}

// SaleLine is one line of a sale. ProductID is nil when the referenced
// product has been deleted from the catalog (or was never cataloged);
// ProductName is the display name captured at entry time and survives
// the product record.
type SaleLine struct {
	ID          int             `json:"id"`
	SaleID      int             `json:"sale_id"`
	ProductID   *int            `json:"product_id,omitempty"`
	ProductName string          `json:"product"`
	Quantity    int             `json:"quantity"`
	SalePrice   decimal.Decimal `json:"sale_price"`
}

// OrderStatus is the purchase-order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

// PurchaseOrder is a supplier purchase order header with its lines.
// Completing an order receives the goods: each line's quantity is added
// to the product's stock and the status flips to completed.
type PurchaseOrder struct {
	ID               int                 `json:"id"`
	Supplier         string              `json:"supplier,omitempty"`
	Status           OrderStatus         `json:"status"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	OrderDate        time.Time           `json:"order_date"`
	ExpectedDelivery *time.Time          `json:"expected_delivery,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	Lines            []PurchaseOrderLine `json:"products"`
}

// PurchaseOrderLine is one line of a purchase order.
type PurchaseOrderLine struct {
	ID          int             `json:"id"`
	OrderID     int             `json:"order_id"`
	ProductID   *int            `json:"product_id,omitempty"`
	ProductName string          `json:"product"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

// SaleLineInput is the caller-supplied form of a sale line.
// ProductID nil means the line is name-only (uncataloged item).
type SaleLineInput struct {
	ProductID   *int            `json:"product_id"`
	ProductName string          `json:"product"`
	Quantity    int             `json:"quantity"`
	SalePrice   decimal.Decimal `json:"sale_price"`
}

// OrderLineInput is the caller-supplied form of a purchase-order line.
type OrderLineInput struct {
	ProductID   *int            `json:"product_id"`
	ProductName string          `json:"product"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}
