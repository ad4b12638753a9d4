package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/quillmind/tutor-api/internal/api/shared"
	"github.com/quillmind/tutor-api/internal/service/tutor"
)

// TutorHandler exposes the tutoring service over HTTP.
type TutorHandler struct {
	service  *tutor.Service
	validate *validator.Validate
}

// NewTutorHandler creates a handler around the tutoring service.
func NewTutorHandler(service *tutor.Service) *TutorHandler {
	return &TutorHandler{
		service:  service,
		validate: validator.New(),
	}
}

// StartSession handles POST /sessions.
func (h *TutorHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !h.decode(w, r, &req) {
		return
	}

	sessionID, err := h.service.StartSession(r.Context(), req.UserID, req.Subject, req.Difficulty)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, StartSessionResponse{SessionID: sessionID.String()})
}

// SendMessage handles POST /sessions/{id}/messages.
func (h *TutorHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req SendMessageRequest
	if !h.decode(w, r, &req) {
		return
	}

	reply, err := h.service.SendMessage(r.Context(), sessionID, req.Text)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toReplyResponse(reply))
}

// SubmitQuizAnswer handles POST /sessions/{id}/quiz-answers.
func (h *TutorHandler) SubmitQuizAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req QuizAnswerRequest
	if !h.decode(w, r, &req) {
		return
	}

	reply, err := h.service.SubmitQuizAnswer(r.Context(), sessionID, req.ConceptID, req.Answer, req.CorrectIndex)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toReplyResponse(reply))
}

// EndSession handles DELETE /sessions/{id}.
func (h *TutorHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.EndSession(r.Context(), sessionID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, toSessionSummaryResponse(summary))
}

// GetDifficulty handles GET /users/{id}/difficulty.
func (h *TutorHandler) GetDifficulty(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "user ID is required")
		return
	}
	tier := h.service.GetRecommendedDifficulty(userID)
	shared.RespondWithJSON(w, r, http.StatusOK, DifficultyResponse{
		UserID:     userID,
		Difficulty: string(tier),
	})
}

// GetNextConcept handles GET /users/{id}/next-concept?subject=...
func (h *TutorHandler) GetNextConcept(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "user ID is required")
		return
	}
	subject := r.URL.Query().Get("subject")
	if subject == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "subject query parameter is required")
		return
	}

	node, ok := h.service.GetNextConcept(userID, subject)
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "no concept available for this subject")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NextConceptResponse{
		ConceptID:  node.ID,
		Name:       node.Name,
		Subject:    node.Subject,
		Difficulty: node.Difficulty,
	})
}

// decode parses and validates a JSON request body. Writes the error
// response itself and returns false when the body is unusable.
func (h *TutorHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "validation failed: "+err.Error())
		return false
	}
	return true
}

// sessionID parses the {id} URL parameter.
func (h *TutorHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps service errors onto HTTP statuses.
func (h *TutorHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tutor.ErrSessionNotFound):
		shared.RespondWithError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, tutor.ErrInvalidAnswer),
		errors.Is(err, tutor.ErrMessageEmpty):
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
	default:
		shared.RespondWithError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
