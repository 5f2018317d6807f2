package ntfy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MacroPulse/internal/domain/models"
	xhttp "MacroPulse/pkg/http"
	applogger "MacroPulse/pkg/logger"
)

// Priorities understood by the relay.
const (
	PriorityLow     = "low"
	PriorityDefault = "default"
	PriorityHigh    = "high"
)

// Client sends push notifications through an ntfy.sh topic.
type Client struct {
	baseURL string
	topic   string
	http    *xhttp.Client
	logger  *applogger.Logger
}

// New creates a new ntfy notifier.
func New(baseURL, topic string, timeout time.Duration, logger *applogger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		topic:   topic,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  logger,
	}
}

// Send posts one message to the topic. Failures are returned, never retried.
func (c *Client) Send(ctx context.Context, title, message, priority string, tags []string) error {
	if c.topic == "" {
		return fmt.Errorf("ntfy topic not configured")
	}
	if priority == "" {
		priority = PriorityDefault
	}

	headers := map[string]string{
		"Title":        title,
		"Priority":     priority,
		"Content-Type": "text/plain",
	}
	if len(tags) > 0 {
		headers["Tags"] = strings.Join(tags, ",")
	}

	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     fmt.Sprintf("%s/%s", c.baseURL, c.topic),
		Headers: headers,
		Body:    message,
	}, nil)
	if err != nil {
		return fmt.Errorf("ntfy send: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("notification sent", applogger.String("title", title))
	}
	return nil
}

// SendSignal formats and sends a BUY/SELL notification for a reading.
func (c *Client) SendSignal(ctx context.Context, sig models.Signal, r *models.MacroReading) error {
	var tags []string
	switch sig.Action {
	case models.ActionBuy:
		tags = []string{"chart_with_upwards_trend", "moneybag"}
	case models.ActionSell:
		tags = []string{"chart_with_downwards_trend", "warning"}
	default:
		tags = nil
	}

	message := fmt.Sprintf(
		"%s\n\nGDP Growth: %.2f%%\nInflation: %.2f%%\nReal Rate: %.2f%%",
		sig.Reason, r.GDPGrowth, r.Inflation, r.RealRate,
	)
	title := fmt.Sprintf("Trading Signal: %s", sig.Action)
	return c.Send(ctx, title, message, PriorityHigh, tags)
}

// SendTest sends a low-priority test notification.
func (c *Client) SendTest(ctx context.Context, message string) error {
	if message == "" {
		message = "Your macro tracker is set up correctly!"
	}
	return c.Send(ctx, "Test Notification", message, PriorityLow, []string{"white_check_mark"})
}
