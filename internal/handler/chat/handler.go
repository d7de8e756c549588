package chat

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	"github.com/moosemarche/moosebot/backend/internal/model/chat"
	chatService "github.com/moosemarche/moosebot/backend/internal/service/chat"
	"github.com/moosemarche/moosebot/backend/pkg/log"
	"github.com/moosemarche/moosebot/backend/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler serves session lifecycle and message exchange.
type Handler struct {
	chatSvc  *chatService.Service
	store    catalog.Store
	debug    bool
	validate *validator.Validate
}

// New creates the chat handler. With debug set every reply carries the logic panel.
func New(chatSvc *chatService.Service, store catalog.Store, debug bool) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		store:    store,
		debug:    debug,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the session endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Route("/session/{sessionID}/messages", func(r chi.Router) {
		r.Get("/", h.handleTranscript)
		r.Post("/", h.handleSendMessage)
		r.Delete("/", h.handleReset)
	})
}

type sessionResponse struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Messages  []chat.Message `json:"messages"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatSvc.CreateSession(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	messages, err := h.chatSvc.LoadTranscript(r.Context(), session.ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, sessionResponse{
		ID:        session.ID,
		CreatedAt: session.CreatedAt,
		Messages:  messages,
	})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatSvc.LoadTranscript(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, messages)
}

func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "content is required and must be at most 2000 characters")
		return
	}

	turn, err := h.chatSvc.Reply(r.Context(), chi.URLParam(r, "sessionID"), payload.Content)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatService.Present(turn, h.store, h.debug))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.Reset(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, chatService.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, chatService.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		log.WithRequestID(r.Context()).WithError(err).Error("chat request failed")
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
