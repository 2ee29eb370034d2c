// Package odb implements object.Database as a loose-object store: one
// zstd-compressed file per object in a 2-character fan-out layout,
// objects/ab/cdef0123...
package odb

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/plumbing-vcs/plumb/pkg/object"
)

// Store is a content-addressed loose-object store rooted at a
// directory. The objects/ subdirectory is created lazily on first
// write.
type Store struct {
	root  string
	level zstd.EncoderLevel
}

// NewStore creates a Store rooted at the given directory, compressing
// at the default zstd level.
func NewStore(root string) *Store {
	return &Store{root: root, level: zstd.SpeedDefault}
}

// NewStoreLevel creates a Store that compresses loose objects at the
// given zstd level, 1 (fastest) through 22 (smallest). Zero keeps the
// default level.
func NewStoreLevel(root string, level int) *Store {
	s := NewStore(root)
	if level != 0 {
		s.level = zstd.EncoderLevelFromZstd(level)
	}
	return s
}

// Root returns the directory the store was rooted at.
func (s *Store) Root() string { return s.root }

func (s *Store) objectPath(id object.ID) string {
	hex := id.String()
	return filepath.Join(s.root, "objects", hex[:2], hex[2:])
}

// HashObject computes the id data would be stored under without
// writing it: SHA-1 over the "type len\x00content" envelope.
func HashObject(t object.Type, data []byte) object.ID {
	h := sha1.New()
	fmt.Fprintf(h, "%s %d\x00", t, len(data))
	h.Write(data)
	var id object.ID
	copy(id[:], h.Sum(nil))
	return id
}

// Exists reports whether the store contains an object with the id.
func (s *Store) Exists(id object.ID) bool {
	_, err := os.Stat(s.objectPath(id))
	return err == nil
}

// Write stores an object and returns its content hash. The envelope is
// hashed uncompressed; the file on disk is zstd-compressed. Writes are
// atomic: data goes to a temp file which is then renamed into place,
// and writing an already-present object is a no-op.
func (s *Store) Write(t object.Type, data []byte) (object.ID, error) {
	envelope := append(fmt.Appendf(nil, "%s %d\x00", t, len(data)), data...)
	id := HashObject(t, data)

	// Fast path: already exists.
	if s.Exists(id) {
		return id, nil
	}

	compressed, err := s.compress(envelope)
	if err != nil {
		return object.ID{}, fmt.Errorf("object write %s: compress: %w: %w", id, object.ErrStorage, err)
	}

	hex := id.String()
	dir := filepath.Join(s.root, "objects", hex[:2])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return object.ID{}, fmt.Errorf("object write %s: mkdir: %w: %w", id, object.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return object.ID{}, fmt.Errorf("object write %s: tmpfile: %w: %w", id, object.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return object.ID{}, fmt.Errorf("object write %s: %w: %w", id, object.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return object.ID{}, fmt.Errorf("object write %s: close: %w: %w", id, object.ErrStorage, err)
	}
	if err := os.Rename(tmpName, s.objectPath(id)); err != nil {
		os.Remove(tmpName)
		return object.ID{}, fmt.Errorf("object write %s: rename: %w: %w", id, object.ErrStorage, err)
	}

	return id, nil
}

// Read retrieves an object by id, returning its type tag and content.
func (s *Store) Read(id object.ID) (object.Type, []byte, error) {
	raw, err := os.ReadFile(s.objectPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil, fmt.Errorf("object read %s: %w", id, object.ErrNotFound)
		}
		return 0, nil, fmt.Errorf("object read %s: %w", id, err)
	}

	envelope, err := decompress(raw)
	if err != nil {
		return 0, nil, fmt.Errorf("object read %s: decompress: %w", id, err)
	}

	// Parse envelope: "type len\x00content".
	nulIdx := bytes.IndexByte(envelope, 0)
	if nulIdx < 0 {
		return 0, nil, fmt.Errorf("object read %s: invalid envelope (no NUL)", id)
	}
	header := string(envelope[:nulIdx])
	content := envelope[nulIdx+1:]

	typeName, lenStr, ok := strings.Cut(header, " ")
	if !ok {
		return 0, nil, fmt.Errorf("object read %s: invalid header %q", id, header)
	}
	t, err := object.ParseType(typeName)
	if err != nil {
		return 0, nil, fmt.Errorf("object read %s: %w", id, err)
	}
	length, err := strconv.Atoi(lenStr)
	if err != nil {
		return 0, nil, fmt.Errorf("object read %s: invalid length %q: %w", id, lenStr, err)
	}
	if len(content) != length {
		return 0, nil, fmt.Errorf("object read %s: length mismatch (header=%d, actual=%d)", id, length, len(content))
	}

	return t, content, nil
}

func (s *Store) compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(s.level))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}
