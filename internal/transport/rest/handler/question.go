package handler

import (
	"encoding/json"
	"net/http"

	"mindprofile/internal/service"
)

// QuestionHandler handles catalog administration endpoints.
type QuestionHandler struct {
	catalogSvc *service.CatalogService
}

// NewQuestionHandler creates a new question handler.
func NewQuestionHandler(catalogSvc *service.CatalogService) *QuestionHandler {
	return &QuestionHandler{catalogSvc: catalogSvc}
}

// UpdateQuestionRequest is the request body for updating a question.
type UpdateQuestionRequest struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// DeleteQuestionsRequest is the request body for deleting questions.
type DeleteQuestionsRequest struct {
	IDs []string `json:"ids"`
}

// ImportQuestionsRequest is the request body for bulk import.
type ImportQuestionsRequest struct {
	Questions []service.QuestionInput `json:"questions"`
}

// List handles GET /api/questions and GET /api/questions-user
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.catalogSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// Add handles POST /api/questions/add
func (h *QuestionHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req service.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question, err := h.catalogSvc.Add(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": question.ID})
}

// Update handles POST /api/questions/update
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.catalogSvc.Update(r.Context(), req.ID, service.QuestionInput{Text: req.Text, Options: req.Options}); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Delete handles POST /api/questions/delete
func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	deleted, _ := h.catalogSvc.Delete(r.Context(), req.IDs)
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "deleted": deleted})
}

// Import handles POST /api/questions/import
func (h *QuestionHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req ImportQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.catalogSvc.Import(r.Context(), req.Questions); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Import replies plain text for compatibility with the admin page.
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("done"))
}
