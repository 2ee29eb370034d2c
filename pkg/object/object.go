package object

import "fmt"

// Object is the common surface of the four stored variants. The
// interface is sealed: Commit, Tree, Blob and Tag are the only
// implementations, so a type switch over them is exhaustive.
type Object interface {
	// Kind returns the variant's type tag.
	Kind() Type

	// ID returns the object's id. ok is false exactly when the object
	// has never been written.
	ID() (ID, bool)

	// ReadRaw returns the object's serialized bytes. For a persisted
	// object the bytes are fetched from the database; missing backing
	// bytes fail with ErrNotFound. For a never-written object the
	// current in-memory state is encoded instead.
	ReadRaw() ([]byte, error)

	// Write serializes the current state, stores it and returns the
	// assigned id. Writing an unchanged persisted object is a no-op
	// returning the existing id. A failed write leaves the prior id
	// and persisted state untouched.
	Write() (ID, error)

	sealed()
}

// base carries the state shared by all variants: the backing database,
// the assigned id (if any) and whether the in-memory state has diverged
// from what that id names.
type base struct {
	db    Database
	id    ID
	hasID bool
	dirty bool
}

func (b *base) ID() (ID, bool) {
	return b.id, b.hasID
}

func (b *base) sealed() {}

// readRaw implements the common ReadRaw contract; encode supplies the
// in-memory serialization for the never-written case.
func (b *base) readRaw(t Type, encode func() []byte) ([]byte, error) {
	if !b.hasID {
		return encode(), nil
	}
	gotType, data, err := b.db.Read(b.id)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", t, b.id, err)
	}
	if gotType != t {
		return nil, fmt.Errorf("read %s %s: database holds %s: %w", t, b.id, gotType, ErrUnknownType)
	}
	return data, nil
}

// write implements the common Write contract: no-op for a clean
// persisted object, otherwise store and only then update the id.
func (b *base) write(t Type, encode func() []byte) (ID, error) {
	if b.hasID && !b.dirty {
		return b.id, nil
	}
	id, err := b.db.Write(t, encode())
	if err != nil {
		return ID{}, fmt.Errorf("write %s: %w", t, err)
	}
	b.id = id
	b.hasID = true
	b.dirty = false
	return id, nil
}

// Decode constructs the variant matching the stored type tag from raw
// database bytes. A tag outside the known kinds fails with
// ErrUnknownType; it is a consistency fault in the database, never
// coerced to a default variant.
func Decode(db Database, id ID, t Type, data []byte) (Object, error) {
	switch t {
	case TypeCommit:
		return decodeCommit(db, id, data)
	case TypeTree:
		return decodeTree(db, id, data)
	case TypeBlob:
		return decodeBlob(db, id, data), nil
	case TypeTag:
		return decodeTag(db, id, data)
	}
	return nil, fmt.Errorf("decode %s: type tag %d: %w", id, int(t), ErrUnknownType)
}
