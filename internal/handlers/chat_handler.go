package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	api_models "docuchat-backend/internal/models"
	"docuchat-backend/internal/services"
	"docuchat-backend/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ChatService defines the interface expected from the chat session service.
type ChatService interface {
	CreateSession() *api_models.SessionResponse
	GetSession(id uuid.UUID) (*api_models.SessionResponse, error)
	Submit(id uuid.UUID, query string) (*api_models.SessionResponse, bool, error)
	CloseSession(id uuid.UUID) error
}

type ChatHandler struct {
	chatService ChatService
}

func NewChatHandler(chatSvc ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatSvc,
	}
}

// HandleCreateSession handles POST /v1/chat/sessions.
func (h *ChatHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	resp := h.chatService.CreateSession()
	httputil.RespondJSON(w, http.StatusCreated, resp)
}

// HandleGetSession handles GET /v1/chat/sessions/{sessionID}.
func (h *ChatHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	resp, err := h.chatService.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("ERROR [ChatHandler] HandleGetSession for ID %s: %v", sessionID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to get session")
		}
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// HandleSubmitMessage handles POST /v1/chat/sessions/{sessionID}/messages.
// Responds 202 when the query is accepted (the assistant turn arrives
// asynchronously; clients poll GET for it). A rejected submission (blank
// input or a cycle already in flight) is not an error: it responds 200 with
// the unchanged session snapshot.
func (h *ChatHandler) HandleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req api_models.SubmitMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, accepted, err := h.chatService.Submit(sessionID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("ERROR [ChatHandler] HandleSubmitMessage for ID %s: %v", sessionID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to submit message")
		}
		return
	}

	status := http.StatusAccepted
	if !accepted {
		status = http.StatusOK
	}
	httputil.RespondJSON(w, status, resp)
}

// HandleCloseSession handles DELETE /v1/chat/sessions/{sessionID}.
// Tearing down a session cancels any in-flight retrieval cycle.
func (h *ChatHandler) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	if err := h.chatService.CloseSession(sessionID); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			httputil.RespondError(w, http.StatusNotFound, err.Error())
		} else {
			log.Printf("ERROR [ChatHandler] HandleCloseSession for ID %s: %v", sessionID, err)
			httputil.RespondError(w, http.StatusInternalServerError, "Failed to close session")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
