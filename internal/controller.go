package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Controller holds the pieces shared by every concrete controller: the
// notification channel and telemetry. It is embedded in the cloud-specific
// controllers (e.g., AWSController) which add the methods required by the
// ControllerInterface.
type Controller struct {
	// Clients.
	HTTP *http.Client

	// Configuration. An empty webhook URL disables notifications.
	SlackWebhookURL string

	// Telemetry.
	Tracer trace.Tracer
}

func newSlackHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(
			http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Host
			}),
		),
	}
}

// Notify posts a message to the configured Slack incoming webhook. It is
// best-effort: the caller decides whether a failure matters. With no webhook
// configured it is a no-op.
func (c *Controller) Notify(ctx context.Context, message string) (err error) {
	if c.SlackWebhookURL == "" {
		return nil
	}

	ctx, span := c.Tracer.Start(ctx, "slack.notify")
	defer span.End()

	span.SetAttributes(attribute.Int("message_length", len(message)))

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return fmt.Errorf("could not encode Slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.SlackWebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not build Slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("could not send Slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}
