package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pinkcart/api/internal/domain/shipment"
)

// APIFetcher reads the notification feed over HTTP.
type APIFetcher struct {
	baseURL string
	client  *http.Client
}

func NewAPIFetcher(baseURL string, client *http.Client) *APIFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &APIFetcher{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (f *APIFetcher) Fetch(ctx context.Context) ([]shipment.Notification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/notifications", nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("notifications feed returned %s", resp.Status)
	}
	var payload struct {
		Notifications []shipment.Notification `json:"notifications"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Notifications, nil
}
