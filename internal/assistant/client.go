package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"psiagenda/internal/logging"
	"psiagenda/internal/schedule"
)

const (
	defaultModel    = "gemini-2.0-flash"
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout  = 30 * time.Second
)

// Client queries the Gemini API with a free-text question about the
// schedule. The full appointment collection is passed as read-only context;
// the model's behavior beyond "short natural-language answer" is opaque to
// the rest of the system.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientConfig configures a Client. APIKey is required.
type ClientConfig struct {
	APIKey string
	// Model overrides the default Gemini model name.
	Model string
	// Endpoint overrides the API base URL. Tests point it at a local server.
	Endpoint string
	// HTTPClient overrides the default client with its 30s timeout.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient creates a Gemini client from the given configuration.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("assistant: API key is required (set GEMINI_API_KEY)")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

// Ask sends the question with the schedule context and returns the model's
// short answer. All failures come back as *QueryError so callers can
// surface them as a non-fatal condition.
func (c *Client) Ask(ctx context.Context, question string, appointments []schedule.Appointment) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", &QueryError{Op: "ask", Err: fmt.Errorf("question is empty")}
	}

	reqBody := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: buildPrompt(question, appointments, time.Now())}},
		}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &QueryError{Op: "encode", Err: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &QueryError{Op: "ask", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &QueryError{Op: "ask", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("assistant query failed",
			logging.Operation("ask"),
			slog.Int("status_code", resp.StatusCode),
		)
		return "", &QueryError{
			Op:  "ask",
			Err: fmt.Errorf("API returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &QueryError{Op: "decode", Err: err}
	}

	answer := extractAnswer(decoded)
	if answer == "" {
		return "", &QueryError{Op: "decode", Err: fmt.Errorf("response contained no text")}
	}

	c.logger.Info("assistant query answered", logging.Operation("ask"), logging.Status(logging.StatusSuccess))
	return answer, nil
}

// extractAnswer joins all text parts of the first candidate.
func extractAnswer(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	texts := make([]string, 0, len(resp.Candidates[0].Content.Parts))
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}
