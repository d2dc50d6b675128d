package handler

import (
	"encoding/json"
	"net/http"

	"mindprofile/internal/service"
	"mindprofile/internal/transport/rest/middleware"
)

// FeedbackHandler handles visitor feedback submission.
type FeedbackHandler struct {
	feedbackSvc *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedbackSvc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// FeedbackRequest is the request body for POST /api/feedback.
type FeedbackRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// Add handles POST /api/feedback
func (h *FeedbackHandler) Add(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.feedbackSvc.Add(r.Context(), session.Email, req.Rating, req.Text); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}
