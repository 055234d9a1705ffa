package tesseract

import (
	"context"
	"testing"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/providers"
)

func TestExtractTextRejectsBadInput(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name   string
		ctx    context.Context
		config providers.Config
	}{
		{"no image", context.Background(), providers.Config{}},
		{"cancelled", cancelled, providers.Config{Image: []byte{0xFF, 0xD8}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New().ExtractText(tt.ctx, tt.config); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
