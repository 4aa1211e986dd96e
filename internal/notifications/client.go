package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marketsheet/internal/retry"

	"github.com/rs/zerolog/log"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
	priority   string
	retry      retry.Config
}

// RunReport is what a finished run tells the topic.
type RunReport struct {
	RunID     string
	Sheet     string
	Retained  int
	Extracted int
	Failed    int
	Updates   int
	Duration  time.Duration
}

type NotificationError struct {
	Type       string
	StatusCode int
	Underlying error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed [%s]: %v", e.Type, e.Underlying)
}

func (e *NotificationError) Unwrap() error { return e.Underlying }

func (e *NotificationError) IsRetryable() bool {
	switch e.Type {
	case "network", "server", "rate_limit":
		return true
	case "auth", "client":
		return false
	default:
		return e.StatusCode >= 500
	}
}

func NewClient(baseURL, topic string, enabled bool, priority string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		topic:    topic,
		enabled:  enabled,
		priority: priority,
		retry: retry.Config{
			MaxRetries: 2,
			BaseDelay:  time.Second,
			MaxDelay:   5 * time.Second,
			Timeout:    10 * time.Second,
			Retryable:  retryable,
		},
	}
}

func retryable(err error) bool {
	var notifErr *NotificationError
	if errors.As(err, &notifErr) {
		return notifErr.IsRetryable()
	}
	return true
}

// Send posts message to the topic. A disabled client does nothing.
func (c *Client) Send(ctx context.Context, message string) error {
	if !c.enabled {
		log.Ctx(ctx).Debug().Msg("Notifications disabled, skipping")
		return nil
	}

	_, err := retry.WithRetry(ctx, c.retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.post(ctx, message)
	})
	return err
}

func (c *Client) post(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)

	log.Ctx(ctx).Debug().
		Str("url", url).
		Msg("Sending notification")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(message))
	if err != nil {
		return &NotificationError{Type: "client", Underlying: err}
	}

	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Title", "marketsheet")
	if c.priority != "" {
		req.Header.Set("Priority", c.priority)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NotificationError{Type: "network", Underlying: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &NotificationError{
			Type:       categorizeHTTPError(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Underlying: fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	log.Ctx(ctx).Debug().
		Int("status_code", resp.StatusCode).
		Msg("Notification sent successfully")

	return nil
}

// NotifyRunSummary reports a run that wrote to the sheet.
func (c *Client) NotifyRunSummary(ctx context.Context, report RunReport) error {
	if !c.enabled {
		return nil
	}
	if report.Updates == 0 {
		log.Ctx(ctx).Debug().Msg("Nothing written, no notification")
		return nil
	}

	log.Ctx(ctx).Info().
		Int("updates", report.Updates).
		Msg("Sending run summary notification")

	return c.Send(ctx, formatRunSummary(report))
}

func formatRunSummary(r RunReport) string {
	var sb strings.Builder

	rows := r.Updates / 2
	if rows == 1 {
		sb.WriteString(fmt.Sprintf("Updated 1 row in %s\n", r.Sheet))
	} else {
		sb.WriteString(fmt.Sprintf("Updated %d rows in %s\n", rows, r.Sheet))
	}
	sb.WriteString(fmt.Sprintf("Extracted %d of %d listings", r.Extracted, r.Retained))
	if r.Failed > 0 {
		sb.WriteString(fmt.Sprintf(", %d marked as errors", r.Failed))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Took %.3f minutes", r.Duration.Minutes()))

	return sb.String()
}

func categorizeHTTPError(statusCode int) string {
	switch {
	case statusCode == 401 || statusCode == 403:
		return "auth"
	case statusCode == 429:
		return "rate_limit"
	case statusCode >= 400 && statusCode < 500:
		return "client"
	case statusCode >= 500:
		return "server"
	default:
		return "unknown"
	}
}
