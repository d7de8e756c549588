package ws

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/moosemarche/moosebot/backend/internal/analysis/intent"
	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	chatService "github.com/moosemarche/moosebot/backend/internal/service/chat"
	"github.com/moosemarche/moosebot/backend/pkg/log"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// Handler runs a chat session over a WebSocket.
type Handler struct {
	chatSvc  *chatService.Service
	store    catalog.Store
	debug    bool
	upgrader websocket.Upgrader
}

// New creates the WebSocket handler.
func New(chatSvc *chatService.Service, store catalog.Store, debug bool) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		store:   store,
		debug:   debug,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the WebSocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// conn serializes writes; gorilla allows only one concurrent writer.
type conn struct {
	ws        *websocket.Conn
	sessionID string
	mu        sync.Mutex
	logger    *logrus.Entry
}

func (c *conn) send(kind string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	msg := outgoingMessage{Type: kind, SessionID: c.sessionID, Data: data, Timestamp: time.Now().Unix()}
	if err := c.ws.WriteJSON(msg); err != nil {
		c.logger.WithError(err).WithField("type", kind).Warn("websocket write failed")
	}
}

func (c *conn) sendError(message string) {
	c.send("error", map[string]string{"message": message})
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.chatSvc.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithRequestID(r.Context()).WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer ws.Close()

	c := &conn{
		ws:        ws,
		sessionID: sessionID,
		logger:    log.WithRequestID(r.Context()).WithField("session_id", sessionID),
	}
	c.logger.Info("websocket connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readTimeout))
	})
	go pingLoop(ctx, ws)

	transcript, err := h.chatSvc.LoadTranscript(ctx, sessionID)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.send("connected", map[string]any{"messages": transcript})

	for {
		var msg inboundMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WithError(err).Warn("websocket read failed")
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))

		h.handleMessage(ctx, c, msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, c *conn, msg inboundMessage) {
	switch msg.Type {
	case "message":
		text := msg.Text
		if strings.TrimSpace(text) == "" {
			c.sendError(chatService.ErrEmptyMessage.Error())
			return
		}
		c.send("status", map[string]string{"hint": intent.StatusHint(text)})

		turn, err := h.chatSvc.Reply(ctx, c.sessionID, text)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				c.sendError(err.Error())
			}
			return
		}
		c.send("reply", chatService.Present(turn, h.store, h.debug))
	case "reset":
		if err := h.chatSvc.Reset(ctx, c.sessionID); err != nil {
			c.sendError(err.Error())
			return
		}
		c.send("reset", map[string]string{"greeting": intent.OpeningGreeting})
	default:
		c.sendError("unsupported message type: " + msg.Type)
	}
}

func pingLoop(ctx context.Context, ws *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
