package handler

import (
	"encoding/json"
	"net/http"

	"mindprofile/internal/model"
	"mindprofile/internal/service"
	"mindprofile/internal/transport/rest/middleware"
)

// AssessmentHandler handles the visitor-facing test endpoints.
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// SubmitRequest is the request body for a test submission. SnapshotID
// is the id returned by Render; older clients may omit it.
type SubmitRequest struct {
	Answers    model.AnswerSet `json:"answers"`
	SnapshotID string          `json:"snapshotId"`
}

// Render handles GET /test
func (h *AssessmentHandler) Render(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.assessmentSvc.Render(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// Submit handles POST /test
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eval, err := h.assessmentSvc.Submit(r.Context(), session.Email, req.Answers, req.SnapshotID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

// Result handles GET /api/result, the caller's own stored result.
func (h *AssessmentHandler) Result(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.assessmentSvc.GetResult(r.Context(), session.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if result == nil {
		writeError(w, http.StatusNotFound, "no result yet")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
