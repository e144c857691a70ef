package web

import (
	"net/http"

	"retail-dashboard/internal/core"
)

// listOrders handles GET /api/orders. The optional ?status= query filters
// by order status.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	var status *core.OrderStatus
	if q := r.URL.Query().Get("status"); q != "" {
		s := core.OrderStatus(q)
		if s != core.OrderStatusPending && s != core.OrderStatusCompleted {
			writeError(w, r, "invalid status: "+q, "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		status = &s
	}

	result, err := h.svc.ListPurchaseOrders(r.Context(), status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Orders)
}

// getOrder handles GET /api/orders/{id}.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	order, err := h.svc.GetPurchaseOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, order)
}

// createOrder handles POST /api/orders.
// Body: { supplier?, total_amount, order_date?, expected_delivery?, notes?,
//         products: [{product_id?, product?, quantity, unit_cost}] }
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in core.PurchaseOrderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if len(in.Lines) == 0 {
		writeError(w, r, "at least one line is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	order, err := h.svc.CreatePurchaseOrder(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeCreated(w, order)
}

// completeOrder handles POST /api/orders/{id}/complete.
func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	order, err := h.svc.CompletePurchaseOrder(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, order)
}

// deleteOrder handles DELETE /api/orders/{id}.
func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeletePurchaseOrder(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
