// seed wipes the retail tables and loads the demo grocery dataset: an
// eleven-product catalog, two weeks of sales spread relative to now so
// the dashboard windows have data, and a few purchase orders.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"retail-dashboard/internal/db"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Clearing existing data...")
	_, err = tx.Exec(ctx, `
		TRUNCATE sale_details, sales, order_details, orders, products
		RESTART IDENTITY CASCADE;
	`)
	if err != nil {
		log.Fatalf("Failed to truncate tables: %v", err)
	}

	log.Println("Seeding catalog...")
	_, err = tx.Exec(ctx, `
		INSERT INTO products (name, price, stock, category, description) VALUES
		  ('Arroz',             2.50, 100, 'Granos',    'Arroz blanco de grano largo'),
		  ('Leche',             1.80,  50, 'Lácteos',   'Leche entera 1L'),
		  ('Pan',               0.75,  30, 'Panadería', 'Pan blanco'),
		  ('Huevos',            3.20, 200, 'Lácteos',   'Docena de huevos frescos'),
		  ('Aceite de Girasol', 5.50,  80, 'Aceites',   'Aceite de girasol 1L'),
		  ('Azúcar',            1.20, 150, 'Dulces',    'Azúcar refinada 1kg'),
		  ('Pasta',             2.00,  90, 'Granos',    'Pasta tipo espagueti 500g'),
		  ('Manzanas',          0.80,  60, 'Frutas',    'Manzanas rojas frescas'),
		  ('Frijoles',          2.80, 120, 'Granos',    'Frijoles negros 1kg'),
		  ('Yogur',             1.50,  40, 'Lácteos',   'Yogur natural 500ml'),
		  ('Bananas',           0.60,  70, 'Frutas',    'Bananas maduras');
	`)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Println("Seeding sales...")
	// Dates are relative to now so the 7/14/30-day report windows are
	// populated regardless of when the seed runs.
	_, err = tx.Exec(ctx, `
		INSERT INTO sales (total_amount, gain, sale_date) VALUES
		  (12.50, 4.10, now() - interval '1 day'),
		  ( 8.40, 2.60, now() - interval '2 days'),
		  (21.70, 7.90, now() - interval '3 days'),
		  ( 5.75, 1.80, now() - interval '5 days'),
		  (14.20, 4.60, now() - interval '6 days'),
		  ( 9.90, 3.10, now() - interval '9 days'),
		  (17.30, 5.80, now() - interval '11 days'),
		  ( 7.60, 2.20, now() - interval '13 days');

		INSERT INTO sale_details (sale_id, product_id, product_name, quantity, sale_price) VALUES
		  (1,  1, 'Arroz',             3, 2.50),
		  (1,  2, 'Leche',             2, 1.80),
		  (1,  8, 'Manzanas',          2, 0.80),
		  (2,  4, 'Huevos',            2, 3.20),
		  (2,  3, 'Pan',               2, 0.75),
		  (3,  5, 'Aceite de Girasol', 3, 5.50),
		  (3,  6, 'Azúcar',            4, 1.20),
		  (4,  7, 'Pasta',             2, 2.00),
		  (4, 11, 'Bananas',           2, 0.60),
		  (5,  9, 'Frijoles',          4, 2.80),
		  (5, 10, 'Yogur',             2, 1.50),
		  (6,  1, 'Arroz',             2, 2.50),
		  (6,  4, 'Huevos',            1, 3.20),
		  (7,  5, 'Aceite de Girasol', 2, 5.50),
		  (7,  2, 'Leche',             3, 1.80),
		  (8,  6, 'Azúcar',            3, 1.20),
		  (8,  3, 'Pan',               4, 0.75);
	`)
	if err != nil {
		log.Fatalf("Failed to seed sales: %v", err)
	}

	log.Println("Seeding purchase orders...")
	_, err = tx.Exec(ctx, `
		INSERT INTO orders (supplier, status, total_amount, order_date, expected_delivery, notes) VALUES
		  ('Distribuidora Central', 'completed', 325.00, now() - interval '10 days', NULL, 'Reposición mensual de granos'),
		  ('Lácteos del Valle',     'completed', 188.00, now() - interval '6 days',  NULL, NULL),
		  ('Frutas La Huerta',      'pending',    94.00, now() - interval '1 day',
		   (now() + interval '3 days')::date, 'Entrega en la mañana');

		INSERT INTO order_details (order_id, product_id, product_name, quantity, unit_cost) VALUES
		  (1, 1, 'Arroz',    100, 1.90),
		  (1, 9, 'Frijoles',  50, 2.10),
		  (2, 2, 'Leche',     80, 1.30),
		  (2, 10, 'Yogur',    40, 1.10),
		  (3, 8, 'Manzanas',  60, 0.55),
		  (3, 11, 'Bananas', 100, 0.40);
	`)
	if err != nil {
		log.Fatalf("Failed to seed purchase orders: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed data loaded successfully.")
}
