package chatbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinetx/front-office/pkg/logging"
)

func TestClientSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/chatbot/message", r.URL.Path)

		var msg Message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		assert.Equal(t, "s-1", msg.SessionID)
		assert.Equal(t, "bonjour", msg.Message)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Reply{SessionID: "s-1", Reply: "Bonjour !"})
	}))
	defer server.Close()

	client := NewClient(server.URL, logging.New("error"))
	reply, err := client.Send(context.Background(), Message{SessionID: "s-1", Message: "bonjour"})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour !", reply.Reply)
}

func TestClientSendServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, logging.New("error"))
	_, err := client.Send(context.Background(), Message{Message: "bonjour"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClientEndSession(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, logging.New("error"))
	require.NoError(t, client.EndSession(context.Background(), "s-1"))
	assert.Equal(t, "/api/chatbot/sessions/s-1/end", path)
}
