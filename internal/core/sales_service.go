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

// SaleInput is the payload for recording a sale. TotalAmount and Gain are
// the figures captured at the register; the service validates the lines
// but stores the header figures as given rather than overwriting them
// with its own recomputation (the two may legitimately diverge, e.g. a
// whole-ticket discount not reflected in line prices).
type SaleInput struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	Gain        decimal.Decimal `json:"gain"`
	SaleDate    time.Time       `json:"sale_date"`
	Lines       []SaleLineInput `json:"products"`
}

// SalesService records and reads sales. Creating a sale inserts the header
// and detail rows and decrements stock for cataloged lines in one
// transaction.
type SalesService interface {
	// CreateSale validates the lines, writes the sale, and decrements stock
	// for every line carrying a product id. catalog supplies the tx-scoped
	// stock adjustment.
	CreateSale(ctx context.Context, in SaleInput, catalog CatalogService) (*Sale, error)

	// GetSales returns all sales with their resolved lines, newest first.
	// Line product names prefer the current catalog name and fall back to
	// the name captured at entry time.
	GetSales(ctx context.Context) ([]Sale, error)
	GetSale(ctx context.Context, id int) (*Sale, error)
	DeleteSale(ctx context.Context, id int) error
}

type salesService struct {
	pool *pgxpool.Pool
}

func NewSalesService(pool *pgxpool.Pool) SalesService {
	return &salesService{pool: pool}
}

func (s *salesService) CreateSale(ctx context.Context, in SaleInput, catalog CatalogService) (*Sale, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: a sale needs at least one line", ErrInvalidInput)
	}
	for i, l := range in.Lines {
		if l.ProductID == nil && l.ProductName == "" {
			return nil, fmt.Errorf("%w: line %d: product reference is required", ErrInvalidInput, i+1)
		}
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d: quantity must be positive, got %d", ErrInvalidInput, i+1, l.Quantity)
		}
		if l.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: sale price cannot be negative, got %s", ErrInvalidInput, i+1, l.SalePrice)
		}
	}

	saleDate := in.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sale := &Sale{TotalAmount: in.TotalAmount, Gain: in.Gain}
	err = tx.QueryRow(ctx, `
		INSERT INTO sales (total_amount, gain, sale_date)
		VALUES ($1, $2, $3)
		RETURNING id, sale_date, created_at
	`, in.TotalAmount, in.Gain, saleDate).Scan(&sale.ID, &sale.SaleDate, &sale.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale: %w", err)
	}

	for i, l := range in.Lines {
		name := l.ProductName
		if l.ProductID != nil {
			// Deduct stock first so the row lock also guards the name read.
			if err := catalog.AdjustStockTx(ctx, tx, *l.ProductID, -l.Quantity); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			if name == "" {
				if err := tx.QueryRow(ctx,
					"SELECT name FROM products WHERE id = $1", *l.ProductID,
				).Scan(&name); err != nil {
					return nil, fmt.Errorf("line %d: failed to resolve product name: %w", i+1, err)
				}
			}
		}

		line := SaleLine{SaleID: sale.ID, ProductID: l.ProductID, ProductName: name, Quantity: l.Quantity, SalePrice: l.SalePrice}
		err = tx.QueryRow(ctx, `
			INSERT INTO sale_details (sale_id, product_id, product_name, quantity, sale_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, sale.ID, l.ProductID, name, l.Quantity, l.SalePrice).Scan(&line.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert sale line %d: %w", i+1, err)
		}
		sale.Lines = append(sale.Lines, line)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}
	return sale, nil
}

func (s *salesService) GetSales(ctx context.Context) ([]Sale, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, total_amount, gain, sale_date, created_at
		FROM sales
		ORDER BY sale_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []Sale
	index := make(map[int]int)
	for rows.Next() {
		var sale Sale
		if err := rows.Scan(&sale.ID, &sale.TotalAmount, &sale.Gain, &sale.SaleDate, &sale.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		index[sale.ID] = len(sales)
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sale row iteration error: %w", err)
	}
	if len(sales) == 0 {
		return sales, nil
	}

	lineRows, err := s.pool.Query(ctx, `
		SELECT sd.id, sd.sale_id, sd.product_id,
		       COALESCE(p.name, sd.product_name),
		       sd.quantity, sd.sale_price
		FROM sale_details sd
		LEFT JOIN products p ON p.id = sd.product_id
		ORDER BY sd.sale_id, sd.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var l SaleLine
		if err := lineRows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.ProductName, &l.Quantity, &l.SalePrice); err != nil {
			return nil, fmt.Errorf("failed to scan sale line: %w", err)
		}
		if i, ok := index[l.SaleID]; ok {
			sales[i].Lines = append(sales[i].Lines, l)
		}
	}
	return sales, lineRows.Err()
}

func (s *salesService) GetSale(ctx context.Context, id int) (*Sale, error) {
	var sale Sale
	err := s.pool.QueryRow(ctx, `
		SELECT id, total_amount, gain, sale_date, created_at
		FROM sales
		WHERE id = $1
	`, id).Scan(&sale.ID, &sale.TotalAmount, &sale.Gain, &sale.SaleDate, &sale.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sale %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch sale %d: %w", id, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT sd.id, sd.sale_id, sd.product_id,
		       COALESCE(p.name, sd.product_name),
		       sd.quantity, sd.sale_price
		FROM sale_details sd
		LEFT JOIN products p ON p.id = sd.product_id
		WHERE sd.sale_id = $1
		ORDER BY sd.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for sale %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.ProductName, &l.Quantity, &l.SalePrice); err != nil {
			return nil, fmt.Errorf("failed to scan sale line: %w", err)
		}
		sale.Lines = append(sale.Lines, l)
	}
	return &sale, rows.Err()
}

// DeleteSale removes a sale and its detail rows (FK cascade). Stock is not
// restored: a deletion is a bookkeeping correction, not a return.
func (s *salesService) DeleteSale(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM sales WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete sale %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sale %d: %w", id, ErrNotFound)
	}
	return nil
}
