package object

import (
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"testing"
)

// memDB is an in-memory Database for tests that do not need a real
// store on disk.
type memDB struct {
	objects map[ID]memObject
}

type memObject struct {
	t    Type
	data []byte
}

func newMemDB() *memDB {
	return &memDB{objects: make(map[ID]memObject)}
}

func (m *memDB) hash(t Type, data []byte) ID {
	h := sha1.New()
	fmt.Fprintf(h, "%s %d\x00", t, len(data))
	h.Write(data)
	var id ID
	copy(id[:], h.Sum(nil))
	return id
}

func (m *memDB) Exists(id ID) bool {
	_, ok := m.objects[id]
	return ok
}

func (m *memDB) Read(id ID) (Type, []byte, error) {
	obj, ok := m.objects[id]
	if !ok {
		return 0, nil, fmt.Errorf("read %s: %w", id, ErrNotFound)
	}
	out := make([]byte, len(obj.data))
	copy(out, obj.data)
	return obj.t, out, nil
}

func (m *memDB) Write(t Type, data []byte) (ID, error) {
	id := m.hash(t, data)
	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[id] = memObject{t: t, data: stored}
	return id, nil
}

// failDB refuses all writes, for exercising failed-write semantics.
type failDB struct {
	*memDB
}

func (f failDB) Write(t Type, data []byte) (ID, error) {
	return ID{}, fmt.Errorf("disk full: %w", ErrStorage)
}

func TestNewObjectHasNoID(t *testing.T) {
	db := newMemDB()
	for _, obj := range []Object{NewCommit(db), NewTree(db), NewBlob(db), NewTag(db)} {
		if _, ok := obj.ID(); ok {
			t.Errorf("%s: new object should have no id", obj.Kind())
		}
	}
}

func TestBlobWriteAssignsID(t *testing.T) {
	db := newMemDB()
	blob := NewBlob(db)
	blob.SetData([]byte("hello world"))

	id, err := blob.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if id.IsZero() {
		t.Error("Write returned zero id")
	}
	got, ok := blob.ID()
	if !ok || got != id {
		t.Errorf("ID after write: got (%v, %v), want (%v, true)", got, ok, id)
	}
}

func TestWriteIsIdempotentWhenUnchanged(t *testing.T) {
	db := newMemDB()
	blob := NewBlob(db)
	blob.SetData([]byte("stable"))

	first, err := blob.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Writing again without mutation must return the same id and not
	// touch the database.
	before := len(db.objects)
	second, err := blob.Write()
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if first != second {
		t.Errorf("idempotent write: got %s, want %s", second, first)
	}
	if len(db.objects) != before {
		t.Error("no-op write touched the database")
	}
}

func TestFailedWriteLeavesPriorState(t *testing.T) {
	db := newMemDB()
	blob := NewBlob(db)
	blob.SetData([]byte("v1"))
	id, err := blob.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	blob.db = failDB{db}
	blob.SetData([]byte("v2"))
	if _, err := blob.Write(); !errors.Is(err, ErrStorage) {
		t.Fatalf("Write on failing db: got %v, want ErrStorage", err)
	}

	got, ok := blob.ID()
	if !ok || got != id {
		t.Errorf("failed write moved id: got (%v, %v), want (%v, true)", got, ok, id)
	}
	if _, data, err := db.Read(id); err != nil || !bytes.Equal(data, []byte("v1")) {
		t.Errorf("failed write disturbed persisted state: %q, %v", data, err)
	}
}

func TestReadRawMissingBackingBytes(t *testing.T) {
	db := newMemDB()
	blob := NewBlob(db)
	blob.SetData([]byte("ephemeral"))
	id, err := blob.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Simulate external compaction dropping the object.
	delete(db.objects, id)
	if _, err := blob.ReadRaw(); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReadRaw after deletion: got %v, want ErrNotFound", err)
	}
}

func TestReadRawUnwrittenEncodesCurrentState(t *testing.T) {
	db := newMemDB()
	blob := NewBlob(db)
	blob.SetData([]byte("in memory only"))

	raw, err := blob.ReadRaw()
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if !bytes.Equal(raw, []byte("in memory only")) {
		t.Errorf("ReadRaw of unwritten blob: got %q", raw)
	}
}

func TestDecodeDispatchesAllKinds(t *testing.T) {
	db := newMemDB()

	blobID, _ := db.Write(TypeBlob, []byte("data"))
	treeID, _ := db.Write(TypeTree, nil)
	commitID, _ := db.Write(TypeCommit, []byte("author a <a@x> 1\ncommitter b <b@x> 2\n\nmsg"))
	tagID, _ := db.Write(TypeTag, []byte("tagger t <t@x> 3\n\nnote"))

	cases := []struct {
		id   ID
		want Type
	}{
		{blobID, TypeBlob},
		{treeID, TypeTree},
		{commitID, TypeCommit},
		{tagID, TypeTag},
	}
	for _, c := range cases {
		typ, data, err := db.Read(c.id)
		if err != nil {
			t.Fatalf("Read %s: %v", c.id, err)
		}
		obj, err := Decode(db, c.id, typ, data)
		if err != nil {
			t.Fatalf("Decode %s: %v", c.want, err)
		}
		if obj.Kind() != c.want {
			t.Errorf("Kind: got %s, want %s", obj.Kind(), c.want)
		}
		if id, ok := obj.ID(); !ok || id != c.id {
			t.Errorf("decoded object id: got (%v, %v), want (%v, true)", id, ok, c.id)
		}
	}
}

func TestDecodeUnknownTypeFault(t *testing.T) {
	db := newMemDB()
	id := db.hash(TypeBlob, []byte("x"))
	if _, err := Decode(db, id, Type(9), []byte("x")); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Decode with tag 9: got %v, want ErrUnknownType", err)
	}
}

func TestRepeatedDecodeIsDeterministic(t *testing.T) {
	db := newMemDB()
	id, _ := db.Write(TypeBlob, []byte("same bytes"))

	var raws [][]byte
	for i := 0; i < 2; i++ {
		typ, data, err := db.Read(id)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		obj, err := Decode(db, id, typ, data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		gotID, ok := obj.ID()
		if !ok || gotID != id {
			t.Fatalf("id mismatch: (%v, %v)", gotID, ok)
		}
		raw, err := obj.ReadRaw()
		if err != nil {
			t.Fatalf("ReadRaw: %v", err)
		}
		raws = append(raws, raw)
	}
	if !bytes.Equal(raws[0], raws[1]) {
		t.Error("two lookups of the same id returned different raw bytes")
	}
}
