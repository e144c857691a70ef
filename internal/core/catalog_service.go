package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNotFound marks lookups for rows that do not exist. Callers unwrap it
// with errors.Is to distinguish missing records from transport failures.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput marks requests rejected by input validation before any
// write happens. The web layer maps it to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

// ProductInput holds the writable fields of a catalog product.
type ProductInput struct {
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// CatalogService manages the product catalog. Detail rows on sales and
// purchase orders reference products by id; deleting a product detaches
// those references (sets them NULL) instead of cascading, so historical
// lines survive as name-only records.
type CatalogService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*Product, error)
	GetProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (*Product, error)
	UpdateProduct(ctx context.Context, id int, in ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id int) error

	// AdjustStockTx adds delta (may be negative) to a product's stock within
	// the caller's transaction, locking the row. It fails when the result
	// would be negative.
	AdjustStockTx(ctx context.Context, tx pgx.Tx, productID, delta int) error
}

type catalogService struct {
	pool *pgxpool.Pool
}

func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

const productColumns = "id, name, COALESCE(sku, ''), price, stock, category, COALESCE(description, ''), created_at"

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Stock, &p.Category, &p.Description, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	p, err := scanProduct(s.pool.QueryRow(ctx, `
		INSERT INTO products (name, sku, price, stock, category, description)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''))
		RETURNING `+productColumns+`
	`, in.Name, in.SKU, in.Price, in.Stock, in.Category, in.Description))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (s *catalogService) GetProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *catalogService) GetProduct(ctx context.Context, id int) (*Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	return p, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int, in ProductInput) (*Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}

	p, err := scanProduct(s.pool.QueryRow(ctx, `
		UPDATE products
		SET name = $2, sku = NULLIF($3, ''), price = $4, stock = $5,
		    category = $6, description = NULLIF($7, '')
		WHERE id = $1
		RETURNING `+productColumns+`
	`, id, in.Name, in.SKU, in.Price, in.Stock, in.Category, in.Description))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return p, nil
}

// DeleteProduct removes a product. Sale and order detail rows that point at
// it keep their captured name with product_id NULLed by the FK constraint,
// which is exactly the "unresolved reference" shape reporting degrades to.
func (s *catalogService) DeleteProduct(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *catalogService) AdjustStockTx(ctx context.Context, tx pgx.Tx, productID, delta int) error {
	var name string
	var stock int
	err := tx.QueryRow(ctx,
		"SELECT name, stock FROM products WHERE id = $1 FOR UPDATE",
		productID,
	).Scan(&name, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("failed to lock product %d: %w", productID, err)
	}

	newStock := stock + delta
	if newStock < 0 {
		return fmt.Errorf("insufficient stock for %s: have %d, need %d", name, stock, -delta)
	}

	if _, err := tx.Exec(ctx,
		"UPDATE products SET stock = $1 WHERE id = $2",
		newStock, productID,
	); err != nil {
		return fmt.Errorf("failed to adjust stock for product %d: %w", productID, err)
	}
	return nil
}

func validateProductInput(in ProductInput) error {
	if in.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: product price cannot be negative, got %s", ErrInvalidInput, in.Price)
	}
	if in.Stock < 0 {
		return fmt.Errorf("%w: product stock cannot be negative, got %d", ErrInvalidInput, in.Stock)
	}
	if in.Category == "" {
		return fmt.Errorf("%w: product category is required", ErrInvalidInput)
	}
	return nil
}
