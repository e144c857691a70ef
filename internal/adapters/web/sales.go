package web

import (
	"net/http"

	"retail-dashboard/internal/core"
)

// listSales handles GET /api/sales.
func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSales(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Sales)
}

// getSale handles GET /api/sales/{id}.
func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	sale, err := h.svc.GetSale(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, sale)
}

// createSale handles POST /api/sales.
// Body: { total_amount, gain, sale_date?, products: [{product_id?, product?, quantity, sale_price}] }
func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var in core.SaleInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if len(in.Lines) == 0 {
		writeError(w, r, "at least one line is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	sale, err := h.svc.RecordSale(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, sale)
}

// deleteSale handles DELETE /api/sales/{id}.
func (h *Handler) deleteSale(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteSale(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
