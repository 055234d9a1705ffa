package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/providers"
)

func TestExtractText(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"cut>\n3.9 CLT Q180"}}]}`))
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_BASE_URL", server.URL)

	text, err := New().ExtractText(context.Background(), providers.Config{
		Model:  "gpt-4o-mini",
		Prompt: "transcribe",
		Image:  []byte{0xFF, 0xD8, 0xFF},
	})
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "cut>\n3.9 CLT Q180" {
		t.Errorf("Expected transcript, got %q", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}

	messages := gotBody["messages"].([]any)
	content := messages[0].(map[string]any)["content"].([]any)
	if len(content) != 2 {
		t.Fatalf("Expected text and image parts, got %d", len(content))
	}
	url := content[1].(map[string]any)["image_url"].(map[string]any)["url"].(string)
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Errorf("Expected data URI, got %q", url)
	}
}

func TestExtractTextErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	t.Setenv("OPENAI_BASE_URL", server.URL)

	t.Setenv("OPENAI_API_KEY", "")
	if _, err := New().ExtractText(context.Background(), providers.Config{}); err == nil {
		t.Error("Expected error without API key")
	}

	t.Setenv("OPENAI_API_KEY", "test-key")
	_, err := New().ExtractText(context.Background(), providers.Config{Model: "m"})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("Expected status error, got %v", err)
	}
}
