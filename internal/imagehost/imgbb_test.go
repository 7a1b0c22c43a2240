package imagehost

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

func TestUpload_ReturnsDisplayURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))

		require.NoError(t, r.ParseMultipartForm(32<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "portrait.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"url":"https://i.ibb.co/x/full.jpg","display_url":"https://i.ibb.co/x/portrait.jpg"}}`))
	}))
	defer srv.Close()

	client := NewClientWithEndpoint("secret-key", srv.URL)
	url, err := client.Upload(context.Background(), "portrait.jpg", []byte{0xFF, 0xD8, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, "https://i.ibb.co/x/portrait.jpg", url)
}

func TestUpload_HostErrorYieldsUploadKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid key"}}`))
	}))
	defer srv.Close()

	client := NewClientWithEndpoint("bad-key", srv.URL)
	_, err := client.Upload(context.Background(), "x.jpg", []byte{1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpload, apperr.KindOf(err))
}

func TestUpload_RejectedUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"data":{}}`))
	}))
	defer srv.Close()

	client := NewClientWithEndpoint("key", srv.URL)
	_, err := client.Upload(context.Background(), "x.jpg", []byte{1})
	require.Error(t, err)
	assert.Equal(t, apperr.KindUpload, apperr.KindOf(err))
}
