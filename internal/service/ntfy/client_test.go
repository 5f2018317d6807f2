package ntfy

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
)

type captured struct {
	path     string
	title    string
	priority string
	tags     string
	body     string
}

func newTestClient(t *testing.T, topic string, got *captured) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*got = captured{
			path:     r.URL.Path,
			title:    r.Header.Get("Title"),
			priority: r.Header.Get("Priority"),
			tags:     r.Header.Get("Tags"),
			body:     string(body),
		}
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, topic, 5*time.Second, nil)
}

func TestSendSetsHeaders(t *testing.T) {
	var got captured
	c := newTestClient(t, "macro-alerts", &got)

	err := c.Send(context.Background(), "Hello", "body text", PriorityDefault, []string{"tada", "bell"})
	require.NoError(t, err)

	assert.Equal(t, "/macro-alerts", got.path)
	assert.Equal(t, "Hello", got.title)
	assert.Equal(t, "default", got.priority)
	assert.Equal(t, "tada,bell", got.tags)
	assert.Equal(t, "body text", got.body)
}

func TestSendWithoutTopic(t *testing.T) {
	c := New("http://ntfy.example", "", time.Second, nil)
	err := c.Send(context.Background(), "t", "m", PriorityLow, nil)
	assert.Error(t, err)
}

func TestSendSignalFormatsReading(t *testing.T) {
	var got captured
	c := newTestClient(t, "macro-alerts", &got)

	sig := models.Signal{Action: models.ActionBuy, Reason: "Strong growth, low inflation, low real rates"}
	reading := &models.MacroReading{GDPGrowth: 3.1, Inflation: 2.2, RealRate: 0.5}

	err := c.SendSignal(context.Background(), sig, reading)
	require.NoError(t, err)

	assert.Equal(t, "Trading Signal: BUY", got.title)
	assert.Equal(t, "high", got.priority)
	assert.Equal(t, "chart_with_upwards_trend,moneybag", got.tags)
	assert.Contains(t, got.body, "GDP Growth: 3.10%")
	assert.Contains(t, got.body, "Inflation: 2.20%")
	assert.Contains(t, got.body, "Real Rate: 0.50%")
}

func TestSendSignalSellTags(t *testing.T) {
	var got captured
	c := newTestClient(t, "macro-alerts", &got)

	sig := models.Signal{Action: models.ActionSell, Reason: "Negative growth or high inflation"}
	err := c.SendSignal(context.Background(), sig, &models.MacroReading{GDPGrowth: -1})
	require.NoError(t, err)

	assert.Equal(t, "Trading Signal: SELL", got.title)
	assert.Equal(t, "chart_with_downwards_trend,warning", got.tags)
}

func TestSendTestDefaultMessage(t *testing.T) {
	var got captured
	c := newTestClient(t, "macro-alerts", &got)

	err := c.SendTest(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "Test Notification", got.title)
	assert.Equal(t, "low", got.priority)
	assert.Equal(t, "Your macro tracker is set up correctly!", got.body)
}
