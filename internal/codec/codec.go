// Package codec encodes and decodes settings documents.
//
// A document is an untyped map mirroring the on-disk shape. Every codec
// returns values in one normalized form so that documents decoded from
// different formats compare equal: integers are int, other numbers are
// float64, objects are map[string]any and arrays are []any.
package codec

import (
	"path/filepath"
	"strings"
)

// Codec converts a document to and from its serialized form.
type Codec interface {
	// Name returns the format name ("json", "yaml", "toml").
	Name() string
	// Marshal serializes a document.
	Marshal(doc map[string]any) ([]byte, error)
	// Unmarshal parses a document. The top level must be an object.
	Unmarshal(data []byte) (map[string]any, error)
}

var (
	jsonCodec Codec = JSON{}
	yamlCodec Codec = YAML{}
	tomlCodec Codec = TOML{}
)

// ForPath picks a codec from the file extension. Unknown extensions use JSON,
// the canonical document format.
func ForPath(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec
	case ".toml":
		return tomlCodec
	default:
		return jsonCodec
	}
}

// ForName returns the codec registered under name, or false.
func ForName(name string) (Codec, bool) {
	switch strings.ToLower(name) {
	case "json":
		return jsonCodec, true
	case "yaml", "yml":
		return yamlCodec, true
	case "toml":
		return tomlCodec, true
	default:
		return nil, false
	}
}
