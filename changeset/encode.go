package changeset

import (
	"encoding/json"
	"io"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

func EncodeYAML(w io.Writer, sel *ComponentSelection) error {
	return yaml.NewEncoder(w).Encode(sel)
}

func EncodeJSON(w io.Writer, sel *ComponentSelection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sel)
}

func DecodeJSON(d []byte) (*ComponentSelection, error) {
	res := &ComponentSelection{}
	if err := json.Unmarshal(d, res); err != nil {
		return nil, err
	}
	return res, nil
}

func DecodeYAML(d []byte) (*ComponentSelection, error) {
	res := &ComponentSelection{}
	if err := yaml.Unmarshal(d, res); err != nil {
		return nil, err
	}
	return res, nil
}

// EqualJSON reports whether two JSON documents are equal regardless of
// object key order.
func EqualJSON(a, b []byte) bool {
	return jsonpatch.Equal(a, b)
}
