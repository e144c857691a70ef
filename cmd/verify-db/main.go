// verify-db checks database connectivity and schema sanity: every table
// the services query must exist, and row counts are printed so a wiped
// database is obvious at a glance.
//
// Usage: go run ./cmd/verify-db
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"retail-dashboard/internal/db"
)

var requiredTables = []string{
	"products",
	"sales",
	"sale_details",
	"orders",
	"order_details",
	"schema_migrations",
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("[CONNECT] %v", err)
	}
	defer pool.Close()
	log.Println("[CONNECT] success")

	failed := false
	for _, table := range requiredTables {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1)",
			table,
		).Scan(&exists)
		if err != nil {
			log.Fatalf("[SCHEMA] failed to check table %s: %v", table, err)
		}
		if !exists {
			log.Printf("[SCHEMA] MISSING table %s — run ./cmd/migrate", table)
			failed = true
			continue
		}

		var count int
		if err := pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			log.Fatalf("[SCHEMA] failed to count %s: %v", table, err)
		}
		log.Printf("[SCHEMA] %-20s %d rows", table, count)
	}

	if failed {
		os.Exit(1)
	}
	log.Println("[DONE] schema looks healthy")
}
