package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nbfilms/studio-api/internal/platform/apperr"
)

// Client talks to the mail relay over HTTP. Delivery failures never block the
// caller's write path; callers downgrade them to a flag on the response.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a relay client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type bookingReceivedPayload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	EventDate string `json:"eventDate"`
}

type statusChangedPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Status  string `json:"status"`
	Package string `json:"package"`
}

// SendBookingReceived asks the relay to send the acknowledgment email for a
// new booking.
func (c *Client) SendBookingReceived(ctx context.Context, name, email, eventDate string) error {
	payload := bookingReceivedPayload{Name: name, Email: email, EventDate: eventDate}
	return c.post(ctx, "/send-email", payload)
}

// SendStatusChanged asks the relay to send the status transition email.
func (c *Client) SendStatusChanged(ctx context.Context, name, email, status, servicePackage string) error {
	payload := statusChangedPayload{Name: name, Email: email, Status: status, Package: servicePackage}
	return c.post(ctx, "/send-status-email", payload)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperr.NewNotificationError(fmt.Errorf("failed to encode payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperr.NewNotificationError(fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.NewNotificationError(fmt.Errorf("relay unreachable: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperr.NewNotificationError(fmt.Errorf("relay returned status %d", resp.StatusCode))
	}
	return nil
}
