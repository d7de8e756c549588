package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moosemarche/moosebot/backend/internal/analysis/intent"
	"github.com/moosemarche/moosebot/backend/internal/model/chat"
	"github.com/moosemarche/moosebot/backend/pkg/log"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyMessage    = errors.New("message content is required")
)

// Responder produces the bot side of a turn.
type Responder interface {
	Respond(prompt string, history []chat.Message) intent.Reply
}

// Turn is the result of one user message.
type Turn struct {
	User         chat.Message     `json:"user"`
	Reply        chat.Message     `json:"reply"`
	Outcome      chat.Outcome     `json:"outcome"`
	Flow         intent.FlowState `json:"flow"`
	Notification *Notification    `json:"notification,omitempty"`
}

// Service encapsulates conversation state management.
type Service struct {
	responder Responder

	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Message
	turns    map[string]*sync.Mutex
}

// NewService bootstraps the in-memory chat service around a responder.
func NewService(responder Responder) *Service {
	return &Service{
		responder: responder,
		sessions:  make(map[string]chat.Session),
		messages:  make(map[string][]chat.Message),
		turns:     make(map[string]*sync.Mutex),
	}
}

// CreateSession provisions an anonymous session whose transcript starts with the opening greeting.
func (s *Service) CreateSession(_ context.Context) (chat.Session, error) {
	session := chat.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.messages[session.ID] = []chat.Message{greeting(session.ID)}
	s.turns[session.ID] = &sync.Mutex{}
	s.mu.Unlock()

	log.Info(log.Fields{"session_id": session.ID}, "session created")
	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// LoadTranscript returns stored messages for the provided session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// Reply records content verbatim as a user message, dispatches it and records the answer.
// Turns within one session are serialized.
func (s *Service) Reply(ctx context.Context, sessionID, content string) (Turn, error) {
	if strings.TrimSpace(content) == "" {
		return Turn{}, ErrEmptyMessage
	}

	lock, err := s.turnLock(sessionID)
	if err != nil {
		return Turn{}, err
	}
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return Turn{}, err
	}

	user, err := s.append(sessionID, chat.Message{Role: chat.RoleUser, Content: content})
	if err != nil {
		return Turn{}, err
	}
	history, err := s.LoadTranscript(ctx, sessionID)
	if err != nil {
		return Turn{}, err
	}

	started := time.Now()
	reply := s.responder.Respond(content, history)
	bot, err := s.append(sessionID, chat.Message{Role: chat.RoleAssistant, Content: reply.Text, Outcome: reply.Outcome})
	if err != nil {
		return Turn{}, err
	}

	log.Info(log.Fields{
		"session_id": sessionID,
		"outcome":    reply.Outcome,
		"flow":       reply.Flow.String(),
		"latency_us": time.Since(started).Microseconds(),
	}, "turn dispatched")

	turn := Turn{User: user, Reply: bot, Outcome: reply.Outcome, Flow: reply.Flow}
	if n, ok := NotificationFor(reply.Outcome); ok {
		turn.Notification = &n
	}
	return turn, nil
}

// Reset clears a transcript back to the opening greeting.
func (s *Service) Reset(_ context.Context, sessionID string) error {
	lock, err := s.turnLock(sessionID)
	if err != nil {
		return err
	}
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	s.messages[sessionID] = []chat.Message{greeting(sessionID)}
	log.Info(log.Fields{"session_id": sessionID}, "session reset")
	return nil
}

func (s *Service) turnLock(sessionID string) (*sync.Mutex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lock, ok := s.turns[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return lock, nil
}

func (s *Service) append(sessionID string, message chat.Message) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return chat.Message{}, ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	message.SessionID = sessionID
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.messages[sessionID] = append(s.messages[sessionID], message)
	return message, nil
}

func greeting(sessionID string) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      chat.RoleAssistant,
		Content:   intent.OpeningGreeting,
		CreatedAt: time.Now().UTC(),
	}
}
