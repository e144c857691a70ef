package app

import (
	"context"
	"fmt"
	"time"

	"retail-dashboard/internal/analytics"
	"retail-dashboard/internal/core"
)

type appService struct {
	catalog   core.CatalogService
	sales     core.SalesService
	purchases core.PurchaseService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	catalog core.CatalogService,
	sales core.SalesService,
	purchases core.PurchaseService,
) ApplicationService {
	return &appService{
		catalog:   catalog,
		sales:     sales,
		purchases: purchases,
	}
}

// ── catalog ───────────────────────────────────────────────────────────────────

func (s *appService) CreateProduct(ctx context.Context, in core.ProductInput) (*core.Product, error) {
	return s.catalog.CreateProduct(ctx, in)
}

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.catalog.GetProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) GetProduct(ctx context.Context, id int) (*core.Product, error) {
	return s.catalog.GetProduct(ctx, id)
}

func (s *appService) UpdateProduct(ctx context.Context, id int, in core.ProductInput) (*core.Product, error) {
	return s.catalog.UpdateProduct(ctx, id, in)
}

func (s *appService) DeleteProduct(ctx context.Context, id int) error {
	return s.catalog.DeleteProduct(ctx, id)
}

// ── sales ─────────────────────────────────────────────────────────────────────

func (s *appService) RecordSale(ctx context.Context, in core.SaleInput) (*core.Sale, error) {
	if in.SaleDate.IsZero() {
		in.SaleDate = time.Now()
	}
	return s.sales.CreateSale(ctx, in, s.catalog)
}

func (s *appService) ListSales(ctx context.Context) (*SaleListResult, error) {
	sales, err := s.sales.GetSales(ctx)
	if err != nil {
		return nil, err
	}
	return &SaleListResult{Sales: sales}, nil
}

func (s *appService) GetSale(ctx context.Context, id int) (*core.Sale, error) {
	return s.sales.GetSale(ctx, id)
}

func (s *appService) DeleteSale(ctx context.Context, id int) error {
	return s.sales.DeleteSale(ctx, id)
}

// ── purchase orders ───────────────────────────────────────────────────────────

func (s *appService) CreatePurchaseOrder(ctx context.Context, in core.PurchaseOrderInput) (*core.PurchaseOrder, error) {
	if in.OrderDate.IsZero() {
		in.OrderDate = time.Now()
	}
	return s.purchases.CreateOrder(ctx, in)
}

func (s *appService) ListPurchaseOrders(ctx context.Context, status *core.OrderStatus) (*OrderListResult, error) {
	orders, err := s.purchases.GetOrders(ctx, status)
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Orders: orders}, nil
}

func (s *appService) GetPurchaseOrder(ctx context.Context, id int) (*core.PurchaseOrder, error) {
	return s.purchases.GetOrder(ctx, id)
}

func (s *appService) CompletePurchaseOrder(ctx context.Context, id int) (*core.PurchaseOrder, error) {
	return s.purchases.CompleteOrder(ctx, id, s.catalog)
}

func (s *appService) DeletePurchaseOrder(ctx context.Context, id int) error {
	return s.purchases.DeleteOrder(ctx, id)
}

// ── reports ───────────────────────────────────────────────────────────────────

// GetDashboard loads one snapshot of all three collections and runs every
// metric against it. The clock is injected here so the engine below this
// point stays deterministic.
func (s *appService) GetDashboard(ctx context.Context) (*DashboardResult, error) {
	products, sales, orders, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &DashboardResult{
		Dashboard:   analytics.BuildDashboard(products, sales, orders, now),
		GeneratedAt: now,
	}, nil
}

func (s *appService) GetForecast(ctx context.Context) (*ForecastResult, error) {
	sales, err := s.sales.GetSales(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &ForecastResult{
		Forecast:    analytics.SalesForecast(sales, now),
		GeneratedAt: now,
	}, nil
}

func (s *appService) GetWeeklySeries(ctx context.Context) (*WeeklySeriesResult, error) {
	sales, err := s.sales.GetSales(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.purchases.GetOrders(ctx, nil)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &WeeklySeriesResult{
		Buckets:     analytics.WeeklyPurchasesVsSales(sales, orders, now),
		GeneratedAt: now,
	}, nil
}

// ── private helpers ───────────────────────────────────────────────────────────

func (s *appService) snapshot(ctx context.Context) ([]core.Product, []core.Sale, []core.PurchaseOrder, error) {
	products, err := s.catalog.GetProducts(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load products: %w", err)
	}
	sales, err := s.sales.GetSales(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load sales: %w", err)
	}
	orders, err := s.purchases.GetOrders(ctx, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load purchase orders: %w", err)
	}
	return products, sales, orders, nil
}
