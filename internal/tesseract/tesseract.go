// Package tesseract runs label photos through a local Tesseract install.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/providers"
	"github.com/otiai10/gosseract/v2"
)

// Tesseract is an offline OCR provider. The prompt and temperature are
// ignored; Model selects the Tesseract language (default "eng").
type Tesseract struct {
	clientFactory func() *gosseract.Client
}

// New returns a new Tesseract provider
func New() *Tesseract {
	return &Tesseract{clientFactory: gosseract.NewClient}
}

// ExtractText recognizes the text in config.Image
func (t *Tesseract) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	if len(config.Image) == 0 {
		return "", fmt.Errorf("no image supplied to tesseract")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := t.clientFactory()
	defer c.Close()

	lang := config.Model
	if lang == "" {
		lang = "eng"
	}
	if err := c.SetLanguage(strings.Split(lang, "+")...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", fmt.Errorf("set page segmentation: %w", err)
	}
	if err := c.SetImageFromBytes(config.Image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
