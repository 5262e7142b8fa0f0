package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bhumika152/GitAssistant-Ollama/internal/core/domain"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewLLMService(Config{APIKey: "test-key", BaseURL: server.URL})
}

func TestGenerateAnswer(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateContentRequest

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)

		json.NewEncoder(w).Encode(generateContentResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: "grounded answer"}}}},
			},
		})
	})

	answer, err := svc.GenerateAnswer(context.Background(), "how does auth work", "--- Document 1 ---")
	if err != nil {
		t.Fatalf("GenerateAnswer: %v", err)
	}
	if answer != "grounded answer" {
		t.Errorf("unexpected answer %q", answer)
	}
	if gotPath != "/models/"+DefaultModel+":generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("API key header not set, got %q", gotKey)
	}

	sent := gotBody.Contents[0].Parts[0].Text
	if !strings.Contains(sent, "how does auth work") || !strings.Contains(sent, "--- Document 1 ---") {
		t.Errorf("prompt missing question or context:\n%s", sent)
	}
}

func TestGenerateAnswerServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := svc.GenerateAnswer(context.Background(), "q", "ctx")
	if !errors.Is(err, domain.ErrLLMService) {
		t.Fatalf("expected ErrLLMService, got %v", err)
	}
}

func TestGenerateAnswerEmptyCandidates(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(generateContentResponse{})
	})

	_, err := svc.GenerateAnswer(context.Background(), "q", "ctx")
	if !errors.Is(err, domain.ErrLLMService) {
		t.Fatalf("expected ErrLLMService, got %v", err)
	}
}

func TestPing(t *testing.T) {
	t.Run("reachable", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/models" {
				t.Errorf("unexpected ping path %q", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		})
		if err := svc.Ping(context.Background()); err != nil {
			t.Errorf("Ping: %v", err)
		}
	})

	t.Run("bad key", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		if err := svc.Ping(context.Background()); !errors.Is(err, domain.ErrLLMService) {
			t.Errorf("expected ErrLLMService, got %v", err)
		}
	})
}
