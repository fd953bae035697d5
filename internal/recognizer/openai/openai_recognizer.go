package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"imgtext/internal/config"
	"imgtext/internal/port"
	"imgtext/internal/recognizer"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Recognizer implements port.TextRecognizer using the OpenAI Chat Completions API.
type Recognizer struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// New creates an OpenAI-based recognizer.
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
		model = "gpt-4o"
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

func (r *Recognizer) Recognize(ctx context.Context, input port.RecognizeInput) (string, error) {
	mediaType := recognizer.SniffMediaType(input.ImageBase64, input.MediaType)
	reqBody := map[string]interface{}{
		"model": r.model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "image_url",
						"image_url": map[string]interface{}{
							"url": "data:" + mediaType + ";base64," + input.ImageBase64,
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
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", recognizer.ResponseError("openai", resp, respBody)
	}

	return parseResponse(respBody)
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API: no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
