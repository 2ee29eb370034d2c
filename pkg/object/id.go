package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// IDSize is the width of a binary object id in bytes.
const IDSize = 20

// HexSize is the length of the hex form of an object id.
const HexSize = IDSize * 2

// ID is a fixed-width binary object hash. The zero value is reserved
// and never identifies a persisted object.
type ID [IDSize]byte

// ParseID decodes a 40-character lowercase hex string into an ID.
func ParseID(s string) (ID, error) {
	var id ID
	if len(s) != HexSize {
		return id, fmt.Errorf("parse id %q: length %d, want %d: %w", s, len(s), HexSize, ErrInvalidArgument)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("parse id %q: %w", s, ErrInvalidArgument)
	}
	return id, nil
}

// MustID is ParseID for known-good constants; it panics on bad input.
func MustID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the 40-character lowercase hex form.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether id is the reserved zero value.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Compare returns -1, 0 or 1 ordering ids by their raw bytes.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

// Less reports whether id sorts before other.
func (id ID) Less(other ID) bool {
	return id.Compare(other) < 0
}
