package codec

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// JSON is the canonical document codec: two-space indentation, a trailing
// newline and no HTML escaping, so non-ASCII values stay readable.
type JSON struct{}

// Name implements Codec.
func (JSON) Name() string { return "json" }

// Marshal implements Codec.
func (JSON) Marshal(doc map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, "marshaling json")
	}
	return buf.Bytes(), nil
}

// Unmarshal implements Codec.
func (JSON) Unmarshal(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "unmarshaling json")
	}
	if dec.More() {
		return nil, errors.New("unmarshaling json: trailing data after document")
	}
	return normalizeDocument(doc), nil
}
