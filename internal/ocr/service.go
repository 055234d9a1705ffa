package ocr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/gemini"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/ollama"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/openai"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/providers"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/tesseract"
	"github.com/disintegration/imaging"
)

// Service transcribes label photos through a vision or OCR provider.
type Service struct {
	mu        sync.RWMutex
	providers map[string]providers.Provider
}

// NewService creates a transcription service with every built in provider
func NewService() *Service {
	return &Service{
		providers: map[string]providers.Provider{
			"openai":    openai.New(),
			"ollama":    ollama.New(),
			"gemini":    gemini.New(),
			"tesseract": tesseract.New(),
		},
	}
}

// Register adds or replaces a provider under name
func (s *Service) Register(name string, p providers.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[name] = p
}

// Provider looks up a registered provider
func (s *Service) Provider(name string) (providers.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("unsupported OCR provider: %s", name)
	}
	return p, nil
}

// Transcribe returns the verbatim text of a label photo. It never returns an
// error: any failure, including an empty reply, comes back as a transcript
// starting with "OCR_ERROR:".
func (s *Service) Transcribe(ctx context.Context, image []byte, provider, model string) string {
	provider, model = ResolveProvider(provider, model)

	p, err := s.Provider(provider)
	if err != nil {
		return ocrError(err)
	}

	jpeg, err := NormalizeImage(image)
	if err != nil {
		return ocrError(err)
	}

	text, err := p.ExtractText(ctx, providers.Config{
		Model:       model,
		Temperature: 0.0,
		Prompt:      BuildPrompt(),
		Image:       jpeg,
	})
	if err != nil {
		slog.Error("Label transcription failed", "provider", provider, "model", model, "err", err)
		return ocrError(err)
	}

	text = cleanTranscript(text)
	if text == "" {
		slog.Warn("Empty label transcription", "provider", provider, "model", model)
		return labels.OCRErrorPrefix + " empty transcription"
	}

	slog.Info("Transcribed label", "provider", provider, "model", model, "length", len(text))
	return text
}

// ResolveProvider fills in the provider and model from the environment when
// they are not given.
func ResolveProvider(provider, model string) (string, string) {
	if provider == "" {
		provider = os.Getenv("OCR_PROVIDER")
		if provider == "" {
			provider = "openai"
		}
	}
	if model == "" {
		model = DefaultModel(provider)
	}
	return provider, model
}

// DefaultModel returns the configured model for provider
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		return envOr("OPENAI_MODEL", "gpt-4o-mini")
	case "ollama":
		return envOr("OLLAMA_MODEL", "mistral-small3.2:24b")
	case "gemini":
		return envOr("GEMINI_MODEL", "gemini-1.5-flash")
	case "tesseract":
		return envOr("TESSERACT_LANG", "eng")
	default:
		return ""
	}
}

// NormalizeImage decodes a photo, applies its EXIF orientation and re-encodes
// it as JPEG at quality 90.
func NormalizeImage(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildPrompt returns the transcription instructions sent to vision models
func BuildPrompt() string {
	return `You are performing OCR on a photo of a production glass label.

Transcribe ALL visible text exactly as it appears, preserving:
- Line breaks and the order of lines
- Capitalization, digits and punctuation
- Markers such as "cut>" and codes such as "3.9 CLT Q180"
- Sizes with fractions, e.g. "42 5/16 x 85 7/16"

Do not interpret, correct or reformat anything. Do not add commentary.
If a character is unreadable, transcribe your best guess.

OUTPUT FORMAT:
Provide ONLY the transcribed text, one label line per output line.`
}

func cleanTranscript(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func ocrError(err error) string {
	return labels.OCRErrorPrefix + " " + err.Error()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
