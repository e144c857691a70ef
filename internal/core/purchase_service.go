package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PurchaseOrderInput is the payload for creating a purchase order.
// TotalAmount is the figure entered on the order form; like sale headers
// it is stored as given.
type PurchaseOrderInput struct {
	Supplier         string           `json:"supplier"`
	TotalAmount      decimal.Decimal  `json:"total_amount"`
	OrderDate        time.Time        `json:"order_date"`
	ExpectedDelivery *time.Time       `json:"expected_delivery"`
	Notes            string           `json:"notes"`
	Lines            []OrderLineInput `json:"products"`
}

// PurchaseService manages supplier purchase orders.
//
// Lifecycle: pending → completed. Completing an order receives the goods,
// adding each cataloged line's quantity to the product's stock in the same
// transaction that flips the status.
type PurchaseService interface {
	CreateOrder(ctx context.Context, in PurchaseOrderInput) (*PurchaseOrder, error)

	// GetOrders returns all purchase orders with resolved lines, newest
	// first. status filters when non-nil.
	GetOrders(ctx context.Context, status *OrderStatus) ([]PurchaseOrder, error)
	GetOrder(ctx context.Context, id int) (*PurchaseOrder, error)

	// CompleteOrder marks a pending order completed and increments stock
	// for its cataloged lines. Completing an already-completed order is an
	// error (goods would be received twice).
	CompleteOrder(ctx context.Context, id int, catalog CatalogService) (*PurchaseOrder, error)

	// DeleteOrder removes a pending order. Completed orders are part of the
	// stock history and cannot be deleted.
	DeleteOrder(ctx context.Context, id int) error
}

type purchaseService struct {
	pool *pgxpool.Pool
}

func NewPurchaseService(pool *pgxpool.Pool) PurchaseService {
	return &purchaseService{pool: pool}
}

func (s *purchaseService) CreateOrder(ctx context.Context, in PurchaseOrderInput) (*PurchaseOrder, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: a purchase order needs at least one line", ErrInvalidInput)
	}
	for i, l := range in.Lines {
		if l.ProductID == nil && l.ProductName == "" {
			return nil, fmt.Errorf("%w: line %d: product reference is required", ErrInvalidInput, i+1)
		}
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d: quantity must be positive, got %d", ErrInvalidInput, i+1, l.Quantity)
		}
		if l.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: unit cost cannot be negative, got %s", ErrInvalidInput, i+1, l.UnitCost)
		}
	}

	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order := &PurchaseOrder{
		Supplier:         in.Supplier,
		Status:           OrderStatusPending,
		TotalAmount:      in.TotalAmount,
		ExpectedDelivery: in.ExpectedDelivery,
		Notes:            in.Notes,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (supplier, status, total_amount, order_date, expected_delivery, notes)
		VALUES (NULLIF($1, ''), $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, order_date, created_at
	`, in.Supplier, OrderStatusPending, in.TotalAmount, orderDate, in.ExpectedDelivery, in.Notes).
		Scan(&order.ID, &order.OrderDate, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert purchase order: %w", err)
	}

	for i, l := range in.Lines {
		name := l.ProductName
		if l.ProductID != nil && name == "" {
			err := tx.QueryRow(ctx, "SELECT name FROM products WHERE id = $1", *l.ProductID).Scan(&name)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, fmt.Errorf("line %d: product %d: %w", i+1, *l.ProductID, ErrNotFound)
				}
				return nil, fmt.Errorf("line %d: failed to resolve product name: %w", i+1, err)
			}
		}

		line := PurchaseOrderLine{OrderID: order.ID, ProductID: l.ProductID, ProductName: name, Quantity: l.Quantity, UnitCost: l.UnitCost}
		err = tx.QueryRow(ctx, `
			INSERT INTO order_details (order_id, product_id, product_name, quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, order.ID, l.ProductID, name, l.Quantity, l.UnitCost).Scan(&line.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order line %d: %w", i+1, err)
		}
		order.Lines = append(order.Lines, line)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase order: %w", err)
	}
	return order, nil
}

const orderColumns = `id, COALESCE(supplier, ''), status, total_amount, order_date, expected_delivery, COALESCE(notes, ''), created_at`

func (s *purchaseService) GetOrders(ctx context.Context, status *OrderStatus) ([]PurchaseOrder, error) {
	q := "SELECT " + orderColumns + " FROM orders"
	var args []any
	if status != nil {
		args = append(args, *status)
		q += " WHERE status = $1"
	}
	q += " ORDER BY order_date DESC, id DESC"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []PurchaseOrder
	index := make(map[int]int)
	for rows.Next() {
		var o PurchaseOrder
		if err := rows.Scan(&o.ID, &o.Supplier, &o.Status, &o.TotalAmount, &o.OrderDate,
			&o.ExpectedDelivery, &o.Notes, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order row iteration error: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lineRows, err := s.pool.Query(ctx, `
		SELECT od.id, od.order_id, od.product_id,
		       COALESCE(p.name, od.product_name),
		       od.quantity, od.unit_cost
		FROM order_details od
		LEFT JOIN products p ON p.id = od.product_id
		ORDER BY od.order_id, od.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var l PurchaseOrderLine
		if err := lineRows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		if i, ok := index[l.OrderID]; ok {
			orders[i].Lines = append(orders[i].Lines, l)
		}
	}
	return orders, lineRows.Err()
}

func (s *purchaseService) GetOrder(ctx context.Context, id int) (*PurchaseOrder, error) {
	var o PurchaseOrder
	err := s.pool.QueryRow(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id,
	).Scan(&o.ID, &o.Supplier, &o.Status, &o.TotalAmount, &o.OrderDate,
		&o.ExpectedDelivery, &o.Notes, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("purchase order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch purchase order %d: %w", id, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT od.id, od.order_id, od.product_id,
		       COALESCE(p.name, od.product_name),
		       od.quantity, od.unit_cost
		FROM order_details od
		LEFT JOIN products p ON p.id = od.product_id
		WHERE od.order_id = $1
		ORDER BY od.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for order %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	return &o, rows.Err()
}

func (s *purchaseService) CompleteOrder(ctx context.Context, id int, catalog CatalogService) (*PurchaseOrder, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status OrderStatus
	err = tx.QueryRow(ctx, "SELECT status FROM orders WHERE id = $1 FOR UPDATE", id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("purchase order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock purchase order %d: %w", id, err)
	}
	if status != OrderStatusPending {
		return nil, fmt.Errorf("purchase order %d is %s, only pending orders can be completed", id, status)
	}

	// Receive goods: cataloged lines add to stock, name-only lines are
	// recorded but have nothing to increment.
	lineRows, err := tx.Query(ctx,
		"SELECT product_id, quantity FROM order_details WHERE order_id = $1 AND product_id IS NOT NULL", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for order %d: %w", id, err)
	}
	type receipt struct {
		productID int
		quantity  int
	}
	var receipts []receipt
	for lineRows.Next() {
		var r receipt
		if err := lineRows.Scan(&r.productID, &r.quantity); err != nil {
			lineRows.Close()
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		receipts = append(receipts, r)
	}
	lineRows.Close()
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("order line iteration error: %w", err)
	}

	for _, r := range receipts {
		if err := catalog.AdjustStockTx(ctx, tx, r.productID, r.quantity); err != nil {
			return nil, fmt.Errorf("failed to receive order %d: %w", id, err)
		}
	}

	if _, err := tx.Exec(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", OrderStatusCompleted, id,
	); err != nil {
		return nil, fmt.Errorf("failed to mark order %d completed: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order completion: %w", err)
	}
	return s.GetOrder(ctx, id)
}

func (s *purchaseService) DeleteOrder(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM orders WHERE id = $1 AND status = $2", id, OrderStatusPending)
	if err != nil {
		return fmt.Errorf("failed to delete purchase order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already completed; look again to say which.
		var status OrderStatus
		err := s.pool.QueryRow(ctx, "SELECT status FROM orders WHERE id = $1", id).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("purchase order %d: %w", id, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check purchase order %d: %w", id, err)
		}
		return fmt.Errorf("purchase order %d is %s and cannot be deleted", id, status)
	}
	return nil
}
