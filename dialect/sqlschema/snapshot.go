package sqlschema

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot encodes the schema into a compact binary form suitable for
// storing alongside a deployment and diffing against a later run. The
// encoding is stable: the same schema always yields the same bytes, since
// every collection in the schema is an ordered slice.
func (s *Schema) Snapshot() ([]byte, error) {
	type plain Schema
	return msgpack.Marshal((*plain)(s))
}

// RestoreSnapshot decodes a schema snapshot produced by Snapshot.
func RestoreSnapshot(data []byte) (*Schema, error) {
	type plain Schema
	var s plain
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return (*Schema)(&s), nil
}

// MarshalText renders the schema as indented JSON, the human-readable form
// of the same stable representation.
func (s *Schema) MarshalText() ([]byte, error) {
	type plain Schema
	return json.MarshalIndent((*plain)(s), "", "  ")
}
