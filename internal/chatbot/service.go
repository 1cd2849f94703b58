package chatbot

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/cabinetx/front-office/internal/observability/metrics"
	"github.com/cabinetx/front-office/pkg/logging"
)

// Sender is the outbound side of the relay, satisfied by *Client.
type Sender interface {
	Send(ctx context.Context, msg Message) (*Reply, error)
	EndSession(ctx context.Context, sessionID string) error
}

// Service relays visitor messages to the assistant and shields the
// widget from upstream failures.
type Service struct {
	sender  Sender
	logger  *logging.Logger
	metrics *metrics.Metrics
}

// NewService creates a chat relay.
func NewService(sender Sender, logger *logging.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{sender: sender, logger: logger, metrics: m}
}

// Relay sends a message and always returns a reply the widget can
// render. An empty session id starts a new thread.
func (s *Service) Relay(ctx context.Context, sessionID, text string) Reply {
	text = strings.TrimSpace(text)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	reply, err := s.sender.Send(ctx, Message{SessionID: sessionID, Message: text})
	if err != nil {
		s.logger.Error("chat relay failed", "session_id", sessionID, "error", err)
		s.metrics.ObserveChatRelay("fallback")
		return Reply{SessionID: sessionID, Reply: FallbackReply}
	}

	s.metrics.ObserveChatRelay("ok")
	if reply.SessionID == "" {
		reply.SessionID = sessionID
	}
	return *reply
}

// End closes a conversation thread. Failures are logged only; the
// widget has nothing useful to do with them.
func (s *Service) End(ctx context.Context, sessionID string) {
	if sessionID == "" {
		return
	}
	if err := s.sender.EndSession(ctx, sessionID); err != nil {
		s.logger.Warn("failed to end chat session", "session_id", sessionID, "error", err)
	}
}
