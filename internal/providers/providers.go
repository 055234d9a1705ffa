package providers

import (
	"context"
)

// Config represents one transcription request sent to a provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	// Image is the JPEG encoded label photo.
	Image []byte
}

// Provider defines the interface for a vision or OCR backend
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}
