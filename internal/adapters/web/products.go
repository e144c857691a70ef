package web

import (
	"net/http"

	"retail-dashboard/internal/core"
)

// listProducts handles GET /api/products.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Products)
}

// getProduct handles GET /api/products/{id}.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, product)
}

// createProduct handles POST /api/products.
// Body: { name, sku?, price, stock, category, description? }
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in core.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	product, err := h.svc.CreateProduct(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, product)
}

// updateProduct handles PUT /api/products/{id}.
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in core.ProductInput
	if !decodeJSON(w, r, &in) {
		return
	}
	product, err := h.svc.UpdateProduct(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, product)
}

// deleteProduct handles DELETE /api/products/{id}.
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
