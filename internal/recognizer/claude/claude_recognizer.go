package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"imgtext/internal/config"
	"imgtext/internal/port"
	"imgtext/internal/recognizer"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Recognizer implements port.TextRecognizer using the Anthropic Messages API.
type Recognizer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// New creates a Claude-based recognizer.
func New(cfg *config.RecognizerConfig, apiKey string) (port.TextRecognizer, error) {
	return newRecognizer(cfg, apiKey, apiURL), nil
}

// NewWithEndpoint creates a recognizer pointing at a custom API endpoint (for testing).
func NewWithEndpoint(cfg *config.RecognizerConfig, apiKey, endpoint string) *Recognizer {
	return newRecognizer(cfg, apiKey, endpoint)
}

func newRecognizer(cfg *config.RecognizerConfig, apiKey, endpoint string) *Recognizer {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Recognizer{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Recognize sends one image block plus the instruction. The Messages API
// rejects a media_type that disagrees with the bytes, so the type is sniffed
// from the payload and input.MediaType is only the fallback.
func (r *Recognizer) Recognize(ctx context.Context, input port.RecognizeInput) (string, error) {
	mediaType := recognizer.SniffMediaType(input.ImageBase64, input.MediaType)
	reqBody := map[string]interface{}{
		"model":      r.model,
		"max_tokens": 4096,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "image",
						"source": map[string]interface{}{
							"type":       "base64",
							"media_type": mediaType,
							"data":       input.ImageBase64,
						},
					},
					{
						"type": "text",
						"text": input.Instruction,
					},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", r.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", recognizer.ResponseError("claude", resp, respBody)
	}

	return parseResponse(respBody)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
