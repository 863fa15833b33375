// Package notify delivers booking events to an operations webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"villabook/internal/pkg/config"
)

// WebhookNotifier posts events as JSON to a configured ops webhook. Delivery
// is best effort: failures are logged and never propagated, so a dead webhook
// cannot block a booking.
type WebhookNotifier struct {
	url  string
	http *http.Client
}

func NewWebhookNotifier(cfg config.NotifyConfig) *WebhookNotifier {
	return &WebhookNotifier{
		url:  cfg.OpsWebhookURL,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type event struct {
	Type    string         `json:"type"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload"`
}

func (n *WebhookNotifier) Notify(ctx context.Context, eventType string, payload map[string]any) {
	if n.url == "" {
		return
	}

	body, err := json.Marshal(event{Type: eventType, At: time.Now().UTC(), Payload: payload})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode notification", "event", eventType, "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		slog.ErrorContext(ctx, "failed to build notification request", "event", eventType, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to deliver notification", "event", eventType, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		slog.ErrorContext(ctx, "notification rejected", "event", eventType, "status", resp.StatusCode)
	}
}
