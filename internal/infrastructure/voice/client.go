package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/merchantkit/backoffice/internal/infrastructure/config"
)

const signedURLPath = "/v1/convai/conversation/get_signed_url"

// SignedURLIssuer issues authenticated session URLs for the
// conversational-voice vendor. The vendor terminates the voice session;
// this system only brokers access with its server-held API key.
type SignedURLIssuer interface {
	SignedURL(ctx context.Context, agentID string) (string, error)
}

// Client is an HTTP client for the conversational-voice vendor API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new voice vendor client
func NewClient(cfg *config.VoiceConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("voice: api key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type signedURLResponse struct {
	SignedURL string `json:"signed_url"`
}

// SignedURL requests a short-lived signed session URL for an agent
func (c *Client) SignedURL(ctx context.Context, agentID string) (string, error) {
	endpoint := fmt.Sprintf("%s%s?agent_id=%s", c.baseURL, signedURLPath, url.QueryEscape(agentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("voice: failed to build request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("voice: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("voice: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("voice: vendor returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed signedURLResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("voice: failed to decode response: %w", err)
	}
	if parsed.SignedURL == "" {
		return "", fmt.Errorf("voice: vendor response missing signed_url")
	}

	return parsed.SignedURL, nil
}
