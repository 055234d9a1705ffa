package dataset

import "github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labels"

// LabelSample is one labelled label transcript. The expected fields are the
// values a person read off the physical label.
type LabelSample struct {
	ID         string `json:"id" parquet:"id"`
	Transcript string `json:"transcript" parquet:"transcript"`
	// ImagePath optionally points at the photo the transcript came from.
	ImagePath string `json:"image_path,omitempty" parquet:"image_path,optional"`

	Thickness string `json:"thickness" parquet:"thickness"`
	GlassType string `json:"glass_type" parquet:"glass_type"`
	Tint      string `json:"tint" parquet:"tint"`
	Size      string `json:"size" parquet:"size"`
	Tag       string `json:"tag" parquet:"tag"`
	PO        string `json:"po" parquet:"po"`
}

// Expected returns the ground truth fields of the sample
func (s *LabelSample) Expected() labels.Fields {
	return labels.Fields{
		Thickness: s.Thickness,
		GlassType: s.GlassType,
		Tint:      s.Tint,
		Size:      s.Size,
		Tag:       s.Tag,
		PO:        s.PO,
	}
}
