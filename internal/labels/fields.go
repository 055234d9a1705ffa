// Package labels turns the OCR transcript of a production glass label into
// the fields recorded on a damage report: thickness, glass type, tint, size,
// tag and purchase order.
//
// Everything in this package is a pure function of its input. A field that
// could not be read is the empty string; there is no other failure state.
package labels

// Field names in report column order.
const (
	FieldThickness = "thickness"
	FieldGlassType = "glass_type"
	FieldTint      = "tint"
	FieldSize      = "size"
	FieldTag       = "tag"
	FieldPO        = "po"
)

// FieldNames lists every extracted field in report column order.
var FieldNames = []string{FieldThickness, FieldGlassType, FieldTint, FieldSize, FieldTag, FieldPO}

// Fields is the result of reading one label.
type Fields struct {
	Thickness string `json:"thickness" yaml:"thickness"`
	GlassType string `json:"glass_type" yaml:"glass_type"`
	Tint      string `json:"tint" yaml:"tint"`
	Size      string `json:"size" yaml:"size"`
	Tag       string `json:"tag" yaml:"tag"`
	PO        string `json:"po" yaml:"po"`
}

// Get returns the value of the named field, or "" for an unknown name.
func (f Fields) Get(name string) string {
	switch name {
	case FieldThickness:
		return f.Thickness
	case FieldGlassType:
		return f.GlassType
	case FieldTint:
		return f.Tint
	case FieldSize:
		return f.Size
	case FieldTag:
		return f.Tag
	case FieldPO:
		return f.PO
	default:
		return ""
	}
}

// Missing returns the names of the fields that were not found.
func (f Fields) Missing() []string {
	var out []string
	for _, name := range FieldNames {
		if f.Get(name) == "" {
			out = append(out, name)
		}
	}
	return out
}

// Empty reports whether no field was found at all.
func (f Fields) Empty() bool {
	return f == Fields{}
}
