// Package chatbot relays landing-page chat messages to the assistant
// behind the API gateway. Transport failures never surface to the
// visitor: the relay degrades to a canned apology instead.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cabinetx/front-office/pkg/logging"
)

// FallbackReply is shown whenever the assistant cannot be reached.
const FallbackReply = "Désolé, je rencontre des difficultés techniques. Veuillez réessayer plus tard."

const defaultTimeout = 20 * time.Second

// Message is a single chat exchange request.
type Message struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

// Reply is the assistant's answer. The session id echoes back so the
// widget can keep the thread across messages.
type Reply struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Client calls the chatbot endpoints on the API gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a chatbot client rooted at baseURL.
func NewClient(baseURL string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send forwards a visitor message and returns the assistant's reply.
func (c *Client) Send(ctx context.Context, msg Message) (*Reply, error) {
	var reply Reply
	if err := c.post(ctx, "/api/chatbot/message", msg, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// EndSession tells the assistant to discard a conversation thread.
func (c *Client) EndSession(ctx context.Context, sessionID string) error {
	return c.post(ctx, "/api/chatbot/sessions/"+sessionID+"/end", nil, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("chatbot: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("chatbot: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chatbot: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("chatbot: %s returned status %d: %s", path, resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("chatbot: decode response: %w", err)
	}
	return nil
}
