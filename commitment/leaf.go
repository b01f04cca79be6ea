package commitment

import (
	"errors"
	"fmt"
)

// ErrTableIdentifierTooLong is returned when a table identifier does not
// fit the single length byte the leaf layout allows.
var ErrTableIdentifierTooLong = errors.New("table identifier exceeds 255 utf-8 bytes")

// EncodeLeaf encodes a table identifier, scheme discriminant and opaque
// commitment bytes into the attestation-tree leaf layout:
//
//	[len(id)] || id || discriminant || commitment
//
// The layout is a wire contract with the attestation-tree producer and must
// match it byte for byte. The identifier must fit the one-byte length
// prefix (at most 255 UTF-8 bytes).
func EncodeLeaf(tableID string, scheme Scheme, commitmentBytes []byte) ([]byte, error) {
	desc, err := Lookup(scheme)
	if err != nil {
		return nil, err
	}
	id := []byte(tableID)
	if len(id) > 255 {
		return nil, fmt.Errorf("%w: %q", ErrTableIdentifierTooLong, tableID)
	}
	leaf := make([]byte, 0, 2+len(id)+len(commitmentBytes))
	leaf = append(leaf, byte(len(id)))
	leaf = append(leaf, id...)
	leaf = append(leaf, desc.WireDiscriminant)
	leaf = append(leaf, commitmentBytes...)
	return leaf, nil
}
