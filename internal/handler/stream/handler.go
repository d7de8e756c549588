package stream

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moosemarche/moosebot/backend/internal/analysis/intent"
	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	chatService "github.com/moosemarche/moosebot/backend/internal/service/chat"
	"github.com/moosemarche/moosebot/backend/pkg/log"
	"github.com/moosemarche/moosebot/backend/pkg/utils"
)

// Handler answers a prompt over Server-Sent Events, emitting a status hint
// before the reply so clients can show a spinner.
type Handler struct {
	chatSvc *chatService.Service
	store   catalog.Store
	delay   time.Duration
	debug   bool
}

// New creates a stream handler. delay is the artificial typing pause.
func New(chatSvc *chatService.Service, store catalog.Store, delay time.Duration, debug bool) *Handler {
	return &Handler{chatSvc: chatSvc, store: store, delay: delay, debug: debug}
}

// RegisterRoutes mounts the stream endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream/{sessionID}", h.handleStream)
}

type statusEvent struct {
	SessionID string `json:"sessionId"`
	Hint      string `json:"hint"`
}

type endEvent struct {
	SessionID string `json:"sessionId"`
	Finished  bool   `json:"finished"`
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	message := r.URL.Query().Get("message")
	if strings.TrimSpace(message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}
	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	if err := h.stream(r.Context(), w, flusher, sessionID, message); err != nil {
		log.WithRequestID(r.Context()).WithError(err).WithField("session_id", sessionID).Warn("stream aborted")
	}
}

func (h *Handler) stream(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sessionID, message string) error {
	utils.SetupSSEHeaders(w)

	if err := utils.SendSSEEvent(w, flusher, "status", statusEvent{SessionID: sessionID, Hint: intent.StatusHint(message)}); err != nil {
		return err
	}

	if err := pause(ctx, h.delay); err != nil {
		return err
	}

	turn, err := h.chatSvc.Reply(ctx, sessionID, message)
	if err != nil {
		_ = utils.SendSSEEvent(w, flusher, "error", map[string]string{"error": err.Error()})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	view := chatService.Present(turn, h.store, h.debug)
	if err := utils.SendSSEEvent(w, flusher, "message", view); err != nil {
		return err
	}
	if view.Notification != nil {
		if err := utils.SendSSEEvent(w, flusher, "notification", view.Notification); err != nil {
			return err
		}
	}
	return utils.SendSSEEvent(w, flusher, "end", endEvent{SessionID: sessionID, Finished: true})
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
