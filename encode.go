package jsnore

import (
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
)

// Encode writes v as JSON followed by a newline. HTML characters are not
// escaped; pretty output is indented by two spaces.
func Encode(w io.Writer, v any, pretty bool) error {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
