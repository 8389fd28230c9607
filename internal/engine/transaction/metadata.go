package transaction

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Metadata is an opaque JSON document attached to a transaction. The
// engine never reads it to apply or invert text; it exists so that
// collaborators (selection tracking, command grouping, sync layers) can
// piggyback their own state on a transaction. Path syntax follows
// gjson: "selection.anchor", "marks.0", and so on.
type Metadata struct {
	raw []byte
}

// NewMetadata wraps a JSON document. Invalid JSON is rejected.
func NewMetadata(raw []byte) (Metadata, error) {
	if len(raw) == 0 {
		return Metadata{}, nil
	}
	if !gjson.ValidBytes(raw) {
		return Metadata{}, fmt.Errorf("metadata is not valid JSON")
	}
	return Metadata{raw: raw}, nil
}

// IsZero reports whether the metadata is empty.
func (m Metadata) IsZero() bool {
	return len(m.raw) == 0
}

// Get retrieves the value at a path. The result's Exists method
// reports whether the path was present.
func (m Metadata) Get(path string) gjson.Result {
	return gjson.GetBytes(m.raw, path)
}

// Set returns a copy of the metadata with the value at path replaced.
// The receiver is unchanged.
func (m Metadata) Set(path string, value any) (Metadata, error) {
	raw, err := sjson.SetBytes(m.raw, path, value)
	if err != nil {
		return m, fmt.Errorf("setting metadata path %q: %w", path, err)
	}
	return Metadata{raw: raw}, nil
}

// Raw returns the underlying JSON document. Callers must not modify it.
func (m Metadata) Raw() []byte {
	return m.raw
}

// String returns the JSON document as a string.
func (m Metadata) String() string {
	return string(m.raw)
}
