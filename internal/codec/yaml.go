package codec

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// YAML encodes documents with gopkg.in/yaml.v3.
type YAML struct{}

// Name implements Codec.
func (YAML) Name() string { return "yaml" }

// Marshal implements Codec.
func (YAML) Marshal(doc map[string]any) (data []byte, err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling yaml: %v", r)
		}
	}()

	data, err = yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	return data, nil
}

// Unmarshal implements Codec.
func (YAML) Unmarshal(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshaling yaml")
	}
	return normalizeDocument(doc), nil
}
