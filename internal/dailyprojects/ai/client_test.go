package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devprojects-hub/daily-projects-backend/internal/dailyprojects/domain"
)

func draftJSON(title string) string {
	return fmt.Sprintf(`{
		"title": %q,
		"description": "A small but complete project idea",
		"difficulty": "intermediate",
		"estimated_time": "3-4 days",
		"category": "Web Applications",
		"technologies": [{"name": "Go", "kind": "backend", "reason": "fast and simple to deploy"}],
		"features": ["feature one", "feature two"]
	}`, title)
}

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	encoded, _ := json.Marshal(reply)
	return string(encoded)
}

func newTestClient(url string) *Client {
	return NewClient(Config{
		BaseURL: url,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: 2 * time.Second,
	})
}

func TestClient_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("parses a full batch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			content := "Here are your projects:\n[" + draftJSON("First") + "," + draftJSON("Second") + "]\nEnjoy!"
			fmt.Fprint(w, chatReply(content))
		}))
		defer server.Close()

		projects, err := newTestClient(server.URL).Generate(ctx, domain.GenerationRequest{Count: 2})
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, "First", projects[0].Title)
		assert.Equal(t, "Second", projects[1].Title)
	})

	t.Run("trims surplus drafts to the requested count", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			content := "[" + draftJSON("A") + "," + draftJSON("B") + "," + draftJSON("C") + "]"
			fmt.Fprint(w, chatReply(content))
		}))
		defer server.Close()

		projects, err := newTestClient(server.URL).Generate(ctx, domain.GenerationRequest{Count: 2})
		require.NoError(t, err)
		assert.Len(t, projects, 2)
	})

	t.Run("reports degraded with partial result when drafts fall short", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Second entry is missing required fields and gets dropped.
			content := "[" + draftJSON("Only valid") + `,{"title": "broken"}]`
			fmt.Fprint(w, chatReply(content))
		}))
		defer server.Close()

		projects, err := newTestClient(server.URL).Generate(ctx, domain.GenerationRequest{Count: 3})
		assert.ErrorIs(t, err, domain.ErrGenerationDegraded)
		require.Len(t, projects, 1)
		assert.Equal(t, "Only valid", projects[0].Title)
	})

	t.Run("retries once on server error", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fmt.Fprint(w, chatReply("["+draftJSON("Recovered")+"]"))
		}))
		defer server.Close()

		projects, err := newTestClient(server.URL).Generate(ctx, domain.GenerationRequest{Count: 1})
		require.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, "Recovered", projects[0].Title)
	})

	t.Run("does not retry quota exhaustion", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusPaymentRequired)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Generate(ctx, domain.GenerationRequest{Count: 1})
		assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("treats insufficient_quota body as unavailable", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error": {"code": "insufficient_quota"}}`)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Generate(ctx, domain.GenerationRequest{Count: 1})
		assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("fails after both attempts error", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Generate(ctx, domain.GenerationRequest{Count: 1})
		assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestParseDrafts(t *testing.T) {
	t.Run("extracts array wrapped in prose", func(t *testing.T) {
		projects, err := parseDrafts("Sure! Here it is: [" + draftJSON("Wrapped") + "] Hope it helps.")
		require.NoError(t, err)
		assert.Equal(t, "Wrapped", projects[0].Title)
	})

	t.Run("rejects content without an array", func(t *testing.T) {
		_, err := parseDrafts("I could not generate projects today.")
		assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
	})

	t.Run("rejects array with zero valid drafts", func(t *testing.T) {
		_, err := parseDrafts(`[{"title": ""}, {"description": "no title"}]`)
		assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Run("default five uses the standard difficulty mix", func(t *testing.T) {
		prompt := buildPrompt(domain.GenerationRequest{Count: 5})
		assert.Contains(t, prompt, "Generate exactly 5")
		assert.Contains(t, prompt, "1 beginner, 2 intermediate, 2 advanced")
	})

	t.Run("preferences override the mix and category", func(t *testing.T) {
		prompt := buildPrompt(domain.GenerationRequest{
			Count:                3,
			DifficultyPreference: []domain.DifficultyLevel{domain.DifficultyAdvanced},
			CategoryPreference:   "DevOps Tools",
		})
		assert.Contains(t, prompt, "preferably: advanced")
		assert.Contains(t, prompt, "Preferably in: DevOps Tools")
	})

	t.Run("demands a bare JSON array reply", func(t *testing.T) {
		prompt := buildPrompt(domain.GenerationRequest{Count: 1})
		assert.Contains(t, prompt, "RESPOND ONLY WITH THE JSON ARRAY")
	})
}
