package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

func TestSendBookingReceived_PostsRelayContract(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/send-email", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.SendBookingReceived(context.Background(), "John", "john@example.com", "2025-06-15")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"name":      "John",
		"email":     "john@example.com",
		"eventDate": "2025-06-15",
	}, got)
}

func TestSendStatusChanged_PostsRelayContract(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send-status-email", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.SendStatusChanged(context.Background(), "John", "john@example.com", "completed", "Wedding Premium")
	require.NoError(t, err)

	assert.Equal(t, "completed", got["status"])
	assert.Equal(t, "Wedding Premium", got["package"])
}

func TestSend_RelayErrorYieldsNotificationKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.SendBookingReceived(context.Background(), "John", "john@example.com", "2025-06-15")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotificationDelivery, apperr.KindOf(err))
}

func TestSend_RelayUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	err := client.SendStatusChanged(context.Background(), "John", "john@example.com", "confirmed", "Wedding")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotificationDelivery, apperr.KindOf(err))
}
