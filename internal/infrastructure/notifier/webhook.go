// Package notifier delivers outbound notifications to the configured
// webhook endpoint.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	"crm-server/internal/config"
	"crm-server/internal/domain/notify"
	"crm-server/internal/infrastructure/metrics"
	"crm-server/internal/utils/httpclients"
)

const (
	kindWelcome       = "welcome"
	kindOperatorAlert = "operator_alert"
	kindTaskReminder  = "task_reminder"
)

// envelope is the wire format posted to the webhook.
type envelope struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

// WebhookNotifier posts notification envelopes to an HTTP webhook. When no
// webhook URL is configured, deliveries are logged and dropped.
type WebhookNotifier struct {
	client  *resty.Client
	url     string
	timeout time.Duration
	log     zerolog.Logger
}

var _ notify.Notifier = (*WebhookNotifier)(nil)

// NewWebhookNotifier builds a notifier from the service configuration.
func NewWebhookNotifier(cfg *config.Config, log zerolog.Logger) *WebhookNotifier {
	if cfg.NotifyWebhookURL == "" {
		log.Warn().Msg("[Notifier] NotifyWebhookURL not configured, notifications will be dropped")
	}

	timeout := cfg.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebhookNotifier{
		client:  httpclients.NewClient("notifier").SetTimeout(timeout),
		url:     cfg.NotifyWebhookURL,
		timeout: timeout,
		log:     log.With().Str("component", "notifier").Logger(),
	}
}

func (n *WebhookNotifier) SendWelcome(ctx context.Context, msg notify.Welcome) error {
	return n.send(ctx, kindWelcome, msg)
}

func (n *WebhookNotifier) SendOperatorAlert(ctx context.Context, msg notify.OperatorAlert) error {
	return n.send(ctx, kindOperatorAlert, msg)
}

func (n *WebhookNotifier) SendTaskReminder(ctx context.Context, msg notify.TaskReminder) error {
	return n.send(ctx, kindTaskReminder, msg)
}

func (n *WebhookNotifier) send(ctx context.Context, kind string, payload any) error {
	if n.url == "" {
		n.log.Debug().Str("kind", kind).Msg("notification dropped, no webhook configured")
		metrics.RecordNotification(kind, "dropped")
		return nil
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(envelope{Kind: kind, Payload: payload}).
		Post(n.url)
	if err != nil {
		metrics.RecordNotification(kind, "error")
		return fmt.Errorf("post %s notification: %w", kind, err)
	}
	if resp.IsError() {
		metrics.RecordNotification(kind, "error")
		return fmt.Errorf("post %s notification: webhook returned %d", kind, resp.StatusCode())
	}

	metrics.RecordNotification(kind, "ok")
	return nil
}
