package chatbot

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/net/websocket"

	"github.com/cabinetx/front-office/pkg/logging"
)

// Handler exposes the chat relay over HTTP and WebSocket.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a chat handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// InboundMessage is what the widget sends over the WebSocket.
type InboundMessage struct {
	Type      string `json:"type"` // "message", "ping", "end"
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string `json:"type"` // "reply", "typing", "pong"
	Text      string `json:"text,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// HandleMessage is the HTTP fallback for widgets without WebSocket.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req Message
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	reply := h.service.Relay(r.Context(), req.SessionID, req.Message)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reply)
}

// HandleWebSocket upgrades to WebSocket and relays messages in real time.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")

	h.logger.Info("chat connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("chat connection closed", "session_id", sessionID, "error", err)
			return
		}

		switch msg.Type {
		case "ping":
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
		case "end":
			h.service.End(r.Context(), firstNonEmpty(msg.SessionID, sessionID))
			return
		case "message":
			if strings.TrimSpace(msg.Text) == "" {
				continue
			}
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})

			reply := h.service.Relay(r.Context(), firstNonEmpty(msg.SessionID, sessionID), msg.Text)
			sessionID = reply.SessionID
			_ = websocket.JSON.Send(conn, OutboundMessage{
				Type:      "reply",
				Text:      reply.Reply,
				SessionID: reply.SessionID,
				Timestamp: reply.Timestamp,
			})
		}
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
