package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MacroPulse/internal/domain/models"
	xhttp "MacroPulse/pkg/http"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Client generates trading commentary with the Gemini generateContent API.
type Client struct {
	apiKey string
	model  string
	http   *xhttp.Client
}

// New creates a Gemini summarizer.
func New(apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		http:   xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Summarize asks the model for a short trading summary of the snapshot.
func (c *Client) Summarize(ctx context.Context, s *models.MacroSnapshot) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}

	var resp generateResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    fmt.Sprintf("%s/%s:generateContent", baseURL, c.model),
		QueryParams: map[string][]string{
			"key": {c.apiKey},
		},
		Body: generateRequest{
			Contents: []content{{Parts: []part{{Text: buildPrompt(s)}}}},
		},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text), nil
}

func buildPrompt(s *models.MacroSnapshot) string {
	stance := "accommodative"
	if s.FedStance > 0 {
		stance = "restrictive"
	}
	curve := "normal"
	if s.YieldSpread < 0 {
		curve = "inverted"
	}

	return fmt.Sprintf(`You are a quantitative macro analyst. Analyze these economic indicators and provide a concise trading summary (3-4 sentences max).

CURRENT MACRO DATA:
- GDP Growth: %.2f%% YoY
- Inflation (CPI): %.2f%% YoY
- Unemployment: %.2f%%
- Manufacturing Index: %.2f
- 10Y Real Rate (TIPS): %.2f%%
- 2Y-10Y Yield Spread: %.2f%% (%s)
- Fed Funds Rate: %.2f%%
- Fed Stance vs Neutral: %.2f%% (%s)

Provide:
1. Overall economic regime (expansion/slowdown/recession)
2. Asset class positioning (equities/bonds/commodities - bullish/neutral/bearish)
3. Key risks to watch
4. Specific actionable insight

Be direct and actionable. No disclaimers about not being financial advice.`,
		s.GDPGrowth, s.Inflation, s.Unemployment, s.Manufacturing,
		s.RealRate, s.YieldSpread, curve, s.FedFunds, s.FedStance, stance)
}
