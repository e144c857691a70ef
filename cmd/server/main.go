package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	webAdapter "retail-dashboard/internal/adapters/web"
	"retail-dashboard/internal/app"
	"retail-dashboard/internal/core"
	"retail-dashboard/internal/db"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	catalog := core.NewCatalogService(pool)
	sales := core.NewSalesService(pool)
	purchases := core.NewPurchaseService(pool)

	svc := app.NewAppService(catalog, sales, purchases)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
