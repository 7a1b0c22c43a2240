package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// DefaultEndpoint is the imgbb upload API.
const DefaultEndpoint = "https://api.imgbb.com/1/upload"

// Client uploads images to imgbb and returns their public display URLs.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an imgbb client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithEndpoint creates a client against a custom endpoint.
func NewClientWithEndpoint(apiKey, endpoint string) *Client {
	c := NewClient(apiKey)
	c.endpoint = endpoint
	return c
}

type uploadResponse struct {
	Data struct {
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload sends the image bytes as a multipart form and returns the hosted
// display URL.
func (c *Client) Upload(ctx context.Context, name string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", name)
	if err != nil {
		return "", apperr.NewUploadError(fmt.Errorf("failed to build form: %w", err))
	}
	if _, err := part.Write(data); err != nil {
		return "", apperr.NewUploadError(fmt.Errorf("failed to write image data: %w", err))
	}
	if err := writer.Close(); err != nil {
		return "", apperr.NewUploadError(fmt.Errorf("failed to finalize form: %w", err))
	}

	url := fmt.Sprintf("%s?key=%s", c.endpoint, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", apperr.NewUploadError(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperr.NewUploadError(fmt.Errorf("image host unreachable: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", apperr.NewUploadError(fmt.Errorf("image host returned status %d: %s", resp.StatusCode, string(body)))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperr.NewUploadError(fmt.Errorf("failed to decode upload response: %w", err))
	}
	if !parsed.Success || parsed.Data.DisplayURL == "" {
		return "", apperr.NewUploadError(fmt.Errorf("image host rejected the upload"))
	}
	return parsed.Data.DisplayURL, nil
}
