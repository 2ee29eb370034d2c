package object

import (
	"fmt"
	"strings"
)

// Tree is an ordered collection of named, content-addressed entries.
// Order is insertion order; it is the primary iteration and indexing
// order and is stable across encode/decode.
type Tree struct {
	base

	entries []*TreeEntry
}

// NewTree returns an empty tree backed by db. It has no id until the
// first Write.
func NewTree(db Database) *Tree {
	return &Tree{base: base{db: db}}
}

func (t *Tree) Kind() Type { return TypeTree }

// Len returns the number of entries.
func (t *Tree) Len() int { return len(t.entries) }

// Contains reports whether an entry with exactly that name exists.
func (t *Tree) Contains(name string) bool {
	return t.indexOf(name) >= 0
}

// Entry returns the entry with the given name.
func (t *Tree) Entry(name string) (*TreeEntry, error) {
	i := t.indexOf(name)
	if i < 0 {
		return nil, fmt.Errorf("tree entry %q: %w", name, ErrNotFound)
	}
	return t.entries[i], nil
}

// EntryAt returns the entry at the given position. Negative indices
// count from the end, -1 being the last entry.
func (t *Tree) EntryAt(index int) (*TreeEntry, error) {
	i, err := normalizeIndex(index, len(t.entries))
	if err != nil {
		return nil, err
	}
	return t.entries[i], nil
}

// Entries returns the entries in order. The slice is a copy; the
// entries are the tree's own handles.
func (t *Tree) Entries() []*TreeEntry {
	out := make([]*TreeEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// AddEntry appends an entry pointing at target by hex id. The target
// need not exist in the database yet; trees are routinely built bottom-up
// with forward references and written afterwards. Duplicate names are
// rejected.
func (t *Tree) AddEntry(targetHex, name string, mode uint32) error {
	id, err := ParseID(targetHex)
	if err != nil {
		return fmt.Errorf("add entry %q: %w", name, err)
	}
	if err := validateEntryName(name); err != nil {
		return fmt.Errorf("add entry: %w", err)
	}
	if t.indexOf(name) >= 0 {
		return fmt.Errorf("add entry %q: name already present: %w", name, ErrInvalidArgument)
	}
	t.entries = append(t.entries, &TreeEntry{tree: t, name: name, mode: mode, id: id})
	t.dirty = true
	return nil
}

// Remove deletes the entry with the given name, shifting subsequent
// entries' positions.
func (t *Tree) Remove(name string) error {
	i := t.indexOf(name)
	if i < 0 {
		return fmt.Errorf("remove entry %q: %w", name, ErrNotFound)
	}
	t.removeAt(i)
	return nil
}

// RemoveAt deletes the entry at the given position, with the same index
// normalization as EntryAt.
func (t *Tree) RemoveAt(index int) error {
	i, err := normalizeIndex(index, len(t.entries))
	if err != nil {
		return err
	}
	t.removeAt(i)
	return nil
}

// Set is unsupported: entries are owned by the tree's storage, and
// replacing one in place would dangle handles already issued for the
// old entry. Remove and re-add instead.
func (t *Tree) Set(name string, entry *TreeEntry) error {
	return fmt.Errorf("replace entry %q: entries cannot be assigned directly, use Remove and AddEntry: %w",
		name, ErrInvalidOperation)
}

func (t *Tree) removeAt(i int) {
	removed := t.entries[i]
	last := len(t.entries) - 1
	copy(t.entries[i:], t.entries[i+1:])
	t.entries[last] = nil // drop the backing array's reference
	t.entries = t.entries[:last]
	removed.tree = nil
	t.dirty = true
}

func (t *Tree) indexOf(name string) int {
	for i, e := range t.entries {
		if e.name == name {
			return i
		}
	}
	return -1
}

func (t *Tree) ReadRaw() ([]byte, error) {
	return t.readRaw(TypeTree, t.encode)
}

func (t *Tree) Write() (ID, error) {
	return t.write(TypeTree, t.encode)
}

// normalizeIndex maps a possibly-negative index onto [0, length) and is
// shared by every positional tree operation.
func normalizeIndex(index, length int) (int, error) {
	if index >= length || index < -length {
		return 0, fmt.Errorf("index %d with length %d: %w", index, length, ErrIndexOutOfRange)
	}
	if index < 0 {
		index += length
	}
	return index, nil
}

func validateEntryName(name string) error {
	if name == "" {
		return fmt.Errorf("entry name is empty: %w", ErrInvalidArgument)
	}
	if strings.ContainsAny(name, "/\x00\n\t") {
		return fmt.Errorf("entry name %q contains reserved characters: %w", name, ErrInvalidArgument)
	}
	return nil
}

// TreeEntry is one named, mode-tagged, id-addressed slot in a tree. It
// is a handle into the owning tree's storage: mutations mark the tree
// modified, and a removed entry is detached from its tree.
type TreeEntry struct {
	tree *Tree
	name string
	mode uint32
	id   ID
}

// Name returns the entry's filename component.
func (e *TreeEntry) Name() string { return e.name }

// SetName renames the entry. Renaming neither reorders the entry nor
// re-checks name uniqueness; uniqueness is enforced at add time only.
func (e *TreeEntry) SetName(name string) error {
	if err := validateEntryName(name); err != nil {
		return fmt.Errorf("rename entry %q: %w", e.name, err)
	}
	e.name = name
	e.markTreeDirty()
	return nil
}

// Mode returns the permission/mode bits.
func (e *TreeEntry) Mode() uint32 { return e.mode }

// SetMode replaces the permission/mode bits. No validation beyond the
// integer range is applied.
func (e *TreeEntry) SetMode(mode uint32) {
	e.mode = mode
	e.markTreeDirty()
}

// ID returns the id of the object this entry points at.
func (e *TreeEntry) ID() ID { return e.id }

// SetID repoints the entry by hex id without touching the object store.
func (e *TreeEntry) SetID(hexID string) error {
	id, err := ParseID(hexID)
	if err != nil {
		return fmt.Errorf("repoint entry %q: %w", e.name, err)
	}
	e.id = id
	e.markTreeDirty()
	return nil
}

// Resolve looks up the object this entry points at. A target missing
// from the database fails with ErrNotFound naming the target id.
func (e *TreeEntry) Resolve() (Object, error) {
	if e.tree == nil {
		return nil, fmt.Errorf("resolve entry %q: entry was removed from its tree: %w", e.name, ErrInvalidOperation)
	}
	t, data, err := e.tree.db.Read(e.id)
	if err != nil {
		return nil, fmt.Errorf("resolve entry %q: target %s: %w", e.name, e.id, err)
	}
	return Decode(e.tree.db, e.id, t, data)
}

func (e *TreeEntry) markTreeDirty() {
	if e.tree != nil {
		e.tree.dirty = true
	}
}
