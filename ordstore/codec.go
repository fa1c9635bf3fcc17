package ordstore

import (
	"bytes"
	"encoding/gob"
)

// encodeNode serializes a node in the implementation-defined, round-
// trippable binary encoding spec §6.2 requires. gob is used because it
// round-trips generic struct fields directly with no field-tag
// bookkeeping, and no other binary codec appears anywhere in the
// retrieval pack to ground an alternative (see DESIGN.md).
func encodeNode[K any, V any](n *pnode[K, V]) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(n); err != nil {
		return nil, wrap(KindCodec, err)
	}
	return buf.Bytes(), nil
}

func decodeNode[K any, V any](data []byte) (*pnode[K, V], error) {
	var n pnode[K, V]
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&n); err != nil {
		return nil, wrap(KindCodec, err)
	}
	return &n, nil
}
