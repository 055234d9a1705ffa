package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/providers"
)

func TestExtractText(t *testing.T) {
	var req struct {
		Model  string   `json:"model"`
		Images []string `json:"images"`
		Stream bool     `json:"stream"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected /api/generate, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"response":"TAG 172819"}`))
	}))
	defer server.Close()

	t.Setenv("OLLAMA_URL", server.URL)

	text, err := New().ExtractText(context.Background(), providers.Config{
		Model: "llava",
		Image: []byte("jpeg"),
	})
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "TAG 172819" {
		t.Errorf("Expected TAG 172819, got %q", text)
	}
	if req.Model != "llava" {
		t.Errorf("Expected model llava, got %s", req.Model)
	}
	if len(req.Images) != 1 || req.Images[0] != "anBlZw==" {
		t.Errorf("Expected one base64 image, got %v", req.Images)
	}
	if req.Stream {
		t.Error("Expected stream=false")
	}
}
