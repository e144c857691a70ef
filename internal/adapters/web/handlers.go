package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"retail-dashboard/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// 1 MB body limit on every API endpoint to prevent unbounded request abuse.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20))

		// ── Catalog ───────────────────────────────────────────────────────────
		r.Get("/api/products", h.listProducts)
		r.Post("/api/products", h.createProduct)
		r.Get("/api/products/{id}", h.getProduct)
		r.Put("/api/products/{id}", h.updateProduct)
		r.Delete("/api/products/{id}", h.deleteProduct)

		// ── Sales ─────────────────────────────────────────────────────────────
		r.Get("/api/sales", h.listSales)
		r.Post("/api/sales", h.createSale)
		r.Get("/api/sales/{id}", h.getSale)
		r.Delete("/api/sales/{id}", h.deleteSale)

		// ── Purchase orders ───────────────────────────────────────────────────
		r.Get("/api/orders", h.listOrders)
		r.Post("/api/orders", h.createOrder)
		r.Get("/api/orders/{id}", h.getOrder)
		r.Post("/api/orders/{id}/complete", h.completeOrder)
		r.Delete("/api/orders/{id}", h.deleteOrder)

		// ── Reports ───────────────────────────────────────────────────────────
		r.Get("/api/reports/dashboard", h.dashboard)
		r.Get("/api/reports/forecast", h.forecast)
		r.Get("/api/reports/weekly", h.weeklySeries)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// idParam extracts the numeric {id} URL parameter. It writes a 400
// response and returns false on garbage input.
func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, "invalid id: "+chi.URLParam(r, "id"), "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the size limit set by RequestBodyLimit middleware; HTTP 400 for
// all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
