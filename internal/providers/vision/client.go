package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Surojit012/DobbyCaption/internal/domain"
	"github.com/Surojit012/DobbyCaption/internal/imageenc"
	"github.com/Surojit012/DobbyCaption/internal/providers/sampling"
)

const (
	defaultBaseURL = "https://api.fireworks.ai/inference/v1"
	defaultModel   = "accounts/fireworks/models/llama-v3p2-11b-vision-instruct"

	clientTimeout = 60 * time.Second

	endpointName = "description endpoint"

	// imageMarker distinguishes the inline image from ordinary prompt text.
	imageMarker = "<image>"

	systemInstruction = "You are an image understanding assistant. Summarize the key subjects, salient objects, and actions in the image. Ignore minor background detail. Be concise."

	// FallbackDescription keeps the pipeline moving when a success response
	// lacks the expected content field.
	FallbackDescription = "A striking photo with a clear main subject."
)

// ErrAPIKeyMissing is returned before any network call when no vision
// credential is configured.
var ErrAPIKeyMissing = &domain.ConfigurationError{Reason: "Vision API key is missing"}

// Options configures the description client. KeyFunc, when set, resolves the
// credential at call time; otherwise the static APIKey is used.
type Options struct {
	APIKey     string
	KeyFunc    func(ctx context.Context) (string, error)
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Params     sampling.Params
	OnFallback func(reason string)
}

// Client asks an image-understanding model for a scene description.
type Client struct {
	apiKey     string
	keyFunc    func(ctx context.Context) (string, error)
	model      string
	baseURL    string
	httpClient *http.Client
	params     sampling.Params
	onFallback func(reason string)
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: clientTimeout}
	}
	params := opts.Params
	if params.Zero() {
		params = sampling.Default()
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		keyFunc:    opts.KeyFunc,
		model:      model,
		baseURL:    baseURL,
		httpClient: httpClient,
		params:     params,
		onFallback: opts.OnFallback,
	}
}

type chatRequest struct {
	Model            string        `json:"model"`
	MaxTokens        int           `json:"max_tokens"`
	TopP             float64       `json:"top_p"`
	TopK             int           `json:"top_k"`
	PresencePenalty  float64       `json:"presence_penalty"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	Temperature      float64       `json:"temperature"`
	Messages         []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Describe performs exactly one network call and returns the scene
// description for the encoded image. A success response without the expected
// content field yields FallbackDescription instead of an error.
func (c *Client) Describe(ctx context.Context, img imageenc.EncodedImage) (string, error) {
	key, err := c.resolveKey(ctx)
	if err != nil {
		return "", err
	}

	payload := chatRequest{
		Model:            c.model,
		MaxTokens:        c.params.MaxTokens,
		TopP:             c.params.TopP,
		TopK:             c.params.TopK,
		PresencePenalty:  c.params.PresencePenalty,
		FrequencyPenalty: c.params.FrequencyPenalty,
		Temperature:      c.params.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: imageMarker + img.DataURI()},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode description request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", fmt.Errorf("build description request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("description request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &domain.RemoteServiceError{Endpoint: endpointName, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return c.fallback("decode_response"), nil
	}
	if len(out.Choices) == 0 {
		return c.fallback("empty_choices"), nil
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return c.fallback("empty_content"), nil
	}
	return text, nil
}

func (c *Client) resolveKey(ctx context.Context) (string, error) {
	key := c.apiKey
	if c.keyFunc != nil {
		resolved, err := c.keyFunc(ctx)
		if err != nil {
			return "", fmt.Errorf("resolve vision api key: %w", err)
		}
		key = resolved
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrAPIKeyMissing
	}
	return key, nil
}

func (c *Client) fallback(reason string) string {
	if c.onFallback != nil {
		c.onFallback(reason)
	}
	return FallbackDescription
}
