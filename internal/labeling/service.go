// Package labeling reads damage report labels: it transcribes a photo and
// extracts the label fields from the transcript.
package labeling

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/models"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/ocr"
)

// Transcriber turns a label photo into raw text. Failures are reported as
// transcripts starting with labels.OCRErrorPrefix.
type Transcriber interface {
	Transcribe(ctx context.Context, image []byte, provider, model string) string
}

type Service struct {
	transcriber Transcriber
	extractor   *labels.Extractor
}

// NewService wires a transcriber to an extractor. A nil extractor uses the
// embedded vocabulary.
func NewService(t Transcriber, e *labels.Extractor) *Service {
	if e == nil {
		e = labels.NewExtractor(nil)
	}
	return &Service{transcriber: t, extractor: e}
}

// NewServiceFromEnv builds the default service: the OCR adapter plus the
// vocabulary named by LABEL_VOCABULARY, or the embedded one.
func NewServiceFromEnv() (*Service, error) {
	v, err := VocabularyFromEnv()
	if err != nil {
		return nil, err
	}
	return NewService(ocr.NewService(), labels.NewExtractor(v)), nil
}

// VocabularyFromEnv loads LABEL_VOCABULARY when set
func VocabularyFromEnv() (*labels.Vocabulary, error) {
	path := os.Getenv("LABEL_VOCABULARY")
	if path == "" {
		return labels.DefaultVocabulary(), nil
	}
	v, err := labels.LoadVocabulary(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load LABEL_VOCABULARY %s: %w", path, err)
	}
	slog.Info("Loaded label vocabulary", "path", path, "suffixes", len(v.Suffixes()))
	return v, nil
}

// Extractor returns the extractor the service reads fields with
func (s *Service) Extractor() *labels.Extractor {
	return s.extractor
}

// ReadLabel transcribes a photo and extracts its fields. It never fails: a
// transcription error shows up as an OCR_ERROR transcript with every field
// empty and a review issue attached.
func (s *Service) ReadLabel(ctx context.Context, image []byte, provider, model string) models.LabelItem {
	start := time.Now()
	provider, model = ocr.ResolveProvider(provider, model)

	raw := s.transcriber.Transcribe(ctx, image, provider, model)
	item := s.ReadTranscript(raw)
	item.Provider = provider
	item.Model = model
	item.ProcessingTime = time.Since(start)

	slog.Info("Read label",
		"provider", provider,
		"model", model,
		"tag", item.Fields.Tag,
		"issues", len(item.Issues),
		"duration", item.ProcessingTime)
	return item
}

// ReadTranscript extracts fields from text that was already transcribed
func (s *Service) ReadTranscript(raw string) models.LabelItem {
	fields := s.extractor.Extract(raw)
	return models.LabelItem{
		Transcript: raw,
		Fields:     fields,
		Issues:     s.extractor.Vocabulary().Review(fields, raw),
		Reason:     models.DefaultReason,
		Qty:        models.DefaultQuantity,
		CreatedAt:  time.Now(),
	}
}
