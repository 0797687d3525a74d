package caption

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Surojit012/DobbyCaption/internal/domain"
)

func TestCaptionBuildsToneConditionedRequest(t *testing.T) {
	var captured chatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer dobby-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Monday has met its match."}}]}`))
	}))
	defer ts.Close()

	client := NewClient(Options{APIKey: "dobby-key", BaseURL: ts.URL})
	got, err := client.Caption(context.Background(), "a dog mid-leap catching a frisbee", domain.ToneBrutal)
	if err != nil {
		t.Fatalf("Caption returned error: %v", err)
	}
	if got != "Monday has met its match." {
		t.Fatalf("caption = %q", got)
	}
	if captured.Model != defaultModel {
		t.Fatalf("model = %q, want %q", captured.Model, defaultModel)
	}
	if captured.Temperature != 0.6 || captured.TopP != 1 || captured.TopK != 40 {
		t.Fatalf("sampling mismatch: %+v", captured)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("messages length = %d, want 2", len(captured.Messages))
	}
	if !strings.Contains(captured.Messages[0].Content, "brutal") {
		t.Fatalf("system prompt missing tone: %q", captured.Messages[0].Content)
	}
	if captured.Messages[1].Content != "a dog mid-leap catching a frisbee" {
		t.Fatalf("user message = %q", captured.Messages[1].Content)
	}
}

func TestCaptionToneChangesOnlySystemPrompt(t *testing.T) {
	t.Parallel()
	for _, tone := range domain.Tones() {
		instruction := buildSystemInstruction(tone)
		if !strings.Contains(instruction, tone.String()) {
			t.Fatalf("instruction for %s does not mention the tone: %q", tone, instruction)
		}
	}
}

func TestCaptionMissingKeyMessage(t *testing.T) {
	t.Parallel()
	called := false
	client := NewClient(Options{
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			called = true
			return nil, errors.New("should not be reached")
		})},
	})
	_, err := client.Caption(context.Background(), "desc", domain.ToneWitty)
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Fatalf("expected ErrAPIKeyMissing, got %v", err)
	}
	if err.Error() != "Dobby API key is missing" {
		t.Fatalf("message = %q", err.Error())
	}
	if called {
		t.Fatal("network call attempted despite missing key")
	}
}

func TestCaptionRemoteFailure(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid key"}`))
	}))
	defer ts.Close()

	client := NewClient(Options{APIKey: "k", BaseURL: ts.URL})
	_, err := client.Caption(context.Background(), "desc", domain.ToneFriendly)
	var rse *domain.RemoteServiceError
	if !errors.As(err, &rse) {
		t.Fatalf("expected RemoteServiceError, got %v", err)
	}
	if rse.Status != http.StatusUnauthorized {
		t.Fatalf("status = %d", rse.Status)
	}
	if !strings.Contains(rse.Body, "invalid key") {
		t.Fatalf("body = %q", rse.Body)
	}
}

func TestCaptionFallsBackOnMissingContent(t *testing.T) {
	t.Parallel()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	var reason string
	client := NewClient(Options{APIKey: "k", BaseURL: ts.URL, OnFallback: func(r string) { reason = r }})
	got, err := client.Caption(context.Background(), "desc", domain.ToneSarcastic)
	if err != nil {
		t.Fatalf("Caption returned error: %v", err)
	}
	if got != FallbackCaption {
		t.Fatalf("caption = %q, want fallback literal", got)
	}
	if reason != "empty_choices" {
		t.Fatalf("fallback reason = %q", reason)
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
