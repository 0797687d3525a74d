package caption

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
	"github.com/Surojit012/DobbyCaption/internal/providers/sampling"
)

const (
	defaultBaseURL = "https://api.fireworks.ai/inference/v1"
	defaultModel   = "accounts/sentientfoundation/models/dobby-unhinged-llama-3-3-70b-new"

	clientTimeout = 60 * time.Second

	endpointName = "caption endpoint"

	// FallbackCaption is shown when a success response lacks the expected
	// content field. The user always gets something at the final stage.
	FallbackCaption = "Dobby has no words for this one."
)

// ErrAPIKeyMissing is returned before any network call when no Dobby
// credential is configured.
var ErrAPIKeyMissing = &domain.ConfigurationError{Reason: "Dobby API key is missing"}

// Options configures the caption client. KeyFunc, when set, resolves the
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

// Client turns a scene description and a tone into a short caption.
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

func buildSystemInstruction(tone domain.Tone) string {
	return fmt.Sprintf("You write social media captions in a %s tone. Turn the scene description from the user into a short, shareable caption of at most 25 words. Reply with the caption only.", tone)
}

// Caption performs exactly one network call and returns the caption for the
// description in the requested tone. A success response without the expected
// content field yields FallbackCaption instead of an error.
func (c *Client) Caption(ctx context.Context, description string, tone domain.Tone) (string, error) {
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
			{Role: "system", Content: buildSystemInstruction(tone)},
			{Role: "user", Content: description},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode caption request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", &buf)
	if err != nil {
		return "", fmt.Errorf("build caption request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("caption request: %w", err)
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
			return "", fmt.Errorf("resolve dobby api key: %w", err)
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
	return FallbackCaption
}
