package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"mindprofile/internal/service"
)

// ReportHandler handles the admin report and stats endpoints.
type ReportHandler struct {
	adminSvc *service.AdminService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(adminSvc *service.AdminService) *ReportHandler {
	return &ReportHandler{adminSvc: adminSvc}
}

// Report handles GET /api/reports/{email}
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	report, err := h.adminSvc.Report(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Stats handles GET /api/stats
func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminSvc.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
