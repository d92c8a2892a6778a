package codec

import (
	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// TOML encodes documents with github.com/pelletier/go-toml/v2.
//
// TOML has no null, so nil values are dropped on Marshal. A key dropped this
// way is filled back from the compiled-in defaults when the document is
// loaded into a registry.
type TOML struct{}

// Name implements Codec.
func (TOML) Name() string { return "toml" }

// Marshal implements Codec.
func (TOML) Marshal(doc map[string]any) ([]byte, error) {
	out, err := toml.Marshal(dropNil(doc))
	if err != nil {
		return nil, errors.Wrap(err, "marshaling toml")
	}
	return out, nil
}

// Unmarshal implements Codec.
func (TOML) Unmarshal(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshaling toml")
	}
	return normalizeDocument(doc), nil
}

func dropNil(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			continue
		case map[string]any:
			out[k] = dropNil(t)
		default:
			out[k] = v
		}
	}
	return out
}
