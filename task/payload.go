package task

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
)

// ErrNoImageSource is returned when a job carries neither inline image bytes
// nor an image URL.
var ErrNoImageSource = errors.New("no image source: provide an image file or an image_url")

const defaultMIME = "image/png"

// ImageSource is the one image input of a job: either raw bytes with a MIME
// type (from a multipart upload) or a URL the provider can fetch itself.
type ImageSource struct {
	Data []byte
	MIME string
	URL  string
}

// Resolve turns the source into the string the provider expects: a base64
// data URI for inline bytes, the URL verbatim otherwise.
func (s ImageSource) Resolve() (string, error) {
	if len(s.Data) > 0 {
		mime := s.MIME
		if mime == "" {
			mime = defaultMIME
		}
		return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(s.Data)), nil
	}
	if s.URL != "" {
		return s.URL, nil
	}
	return "", ErrNoImageSource
}

// FieldKind selects the coercion applied to one submitted parameter.
type FieldKind int

const (
	// Passthrough leaves the value untouched.
	Passthrough FieldKind = iota
	// Boolean maps native bools and the strings "true"/"false" to bool.
	Boolean
	// Number maps native numbers and numeric strings to float64.
	Number
)

// Range is an inclusive numeric bound applied after coercion.
type Range struct {
	Min float64
	Max float64
}

// Schema is one provider's recognized-field table: which coercion each known
// field gets, which defaults fill absent fields, and which fields are
// clamped. Fields not listed pass through unchanged so newly added provider
// parameters keep working without a code change here.
type Schema struct {
	Fields   map[string]FieldKind
	Defaults map[string]any
	Clamps   map[string]Range
}

// Apply builds the outgoing parameter set from the submitted one: coercion
// per the field table, then defaults for absent fields, then clamps. The
// input map is not modified.
func (sc Schema) Apply(params map[string]any) map[string]any {
	out := make(map[string]any, len(params)+len(sc.Defaults))
	for name, value := range params {
		out[name] = coerce(sc.Fields[name], value)
	}
	for name, value := range sc.Defaults {
		if _, ok := out[name]; !ok {
			out[name] = value
		}
	}
	for name, bounds := range sc.Clamps {
		if v, ok := toFloat(out[name]); ok {
			out[name] = clamp(v, bounds)
		}
	}
	return out
}

func coerce(kind FieldKind, value any) any {
	switch kind {
	case Boolean:
		switch v := value.(type) {
		case bool:
			return v
		case string:
			if v == "true" {
				return true
			}
			if v == "false" {
				return false
			}
		}
	case Number:
		if v, ok := toFloat(value); ok {
			return v
		}
	}
	// unparseable values pass through unchanged rather than failing the job
	return value
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func clamp(v float64, r Range) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}
