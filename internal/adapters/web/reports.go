package web

import "net/http"

// dashboard handles GET /api/reports/dashboard: the full metric payload
// computed from one snapshot of the catalog, sales, and purchase orders.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// forecast handles GET /api/reports/forecast.
func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetForecast(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// weeklySeries handles GET /api/reports/weekly.
func (h *Handler) weeklySeries(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetWeeklySeries(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
