// Package repo ties the object model to a concrete on-disk repository:
// a .plumb/ directory holding the loose-object store and the
// repository config.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/plumbing-vcs/plumb/pkg/object"
	"github.com/plumbing-vcs/plumb/pkg/odb"
)

// DirName is the repository metadata directory.
const DirName = ".plumb"

// Repository is an opened repository. It owns the backing object
// database for its lifetime; every object it produces keeps the
// database reachable, so the store outlives its dependents.
type Repository struct {
	RootDir  string          // working directory root
	PlumbDir string          // .plumb/ directory
	DB       object.Database // content-addressed object store
}

// Init creates a new repository at path: .plumb/ with an objects/
// directory and a default config. It fails if a repository already
// exists there.
func Init(path string) (*Repository, error) {
	plumbDir := filepath.Join(path, DirName)

	if _, err := os.Stat(plumbDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", plumbDir)
	}

	if err := os.MkdirAll(filepath.Join(plumbDir, "objects"), 0o755); err != nil {
		return nil, fmt.Errorf("init: mkdir: %w", err)
	}

	r := &Repository{
		RootDir:  path,
		PlumbDir: plumbDir,
		DB:       odb.NewStore(plumbDir),
	}
	if err := r.WriteConfig(&Config{}); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	return r, nil
}

// Open opens the repository whose working directory root is path. It
// never creates one: a missing repository fails with ErrNotFound.
func Open(path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}
	plumbDir := filepath.Join(abs, DirName)
	info, err := os.Stat(plumbDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("open: no repository at %s: %w", abs, object.ErrNotFound)
	}

	r := &Repository{RootDir: abs, PlumbDir: plumbDir}
	cfg, err := r.ReadConfig()
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	r.DB = odb.NewStoreLevel(plumbDir, cfg.Core.Compression)
	return r, nil
}

// Discover searches upward from path for an enclosing repository and
// opens it.
func Discover(path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("discover: abs path: %w", err)
	}

	cur := abs
	for {
		if r, err := Open(cur); err == nil {
			return r, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("discover: not a plumb repository (or any parent up to /): %w", object.ErrNotFound)
		}
		cur = parent
	}
}

// Close releases the repository handle. The loose store keeps no file
// descriptors open between operations, so this is bookkeeping only: it
// exists so callers can treat the handle as a closable resource, and
// the handle stays usable afterwards.
func (r *Repository) Close() error {
	return nil
}

// Contains reports whether the database holds an object with the given
// hex id. Malformed hex is an error, not a negative answer.
func (r *Repository) Contains(hexID string) (bool, error) {
	id, err := object.ParseID(hexID)
	if err != nil {
		return false, err
	}
	return r.DB.Exists(id), nil
}

// Lookup resolves a hex id to its typed object.
func (r *Repository) Lookup(hexID string) (object.Object, error) {
	id, err := object.ParseID(hexID)
	if err != nil {
		return nil, err
	}
	t, data, err := r.DB.Read(id)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", hexID, err)
	}
	return object.Decode(r.DB, id, t, data)
}

// ReadRaw returns the stored type tag and raw payload for a hex id,
// bypassing typed decoding.
func (r *Repository) ReadRaw(hexID string) (object.Type, []byte, error) {
	id, err := object.ParseID(hexID)
	if err != nil {
		return 0, nil, err
	}
	return r.DB.Read(id)
}

// NewCommit returns an empty commit attached to this repository.
func (r *Repository) NewCommit() *object.Commit { return object.NewCommit(r.DB) }

// NewTree returns an empty tree attached to this repository.
func (r *Repository) NewTree() *object.Tree { return object.NewTree(r.DB) }

// NewBlob returns an empty blob attached to this repository.
func (r *Repository) NewBlob() *object.Blob { return object.NewBlob(r.DB) }

// NewTag returns an empty tag attached to this repository.
func (r *Repository) NewTag() *object.Tag { return object.NewTag(r.DB) }

// LookupPath resolves a slash-separated path through nested trees
// starting at root, returning the object the final component points at.
func (r *Repository) LookupPath(root *object.Tree, path string) (object.Object, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 1 && parts[0] == "" {
		return nil, fmt.Errorf("lookup path: empty path: %w", object.ErrInvalidArgument)
	}

	cur := root
	for i, part := range parts {
		entry, err := cur.Entry(part)
		if err != nil {
			return nil, fmt.Errorf("lookup path %q: %w", path, err)
		}
		obj, err := entry.Resolve()
		if err != nil {
			return nil, fmt.Errorf("lookup path %q: %w", path, err)
		}
		if i == len(parts)-1 {
			return obj, nil
		}
		sub, ok := obj.(*object.Tree)
		if !ok {
			return nil, fmt.Errorf("lookup path %q: %q is not a tree: %w", path, part, object.ErrNotFound)
		}
		cur = sub
	}
	return nil, fmt.Errorf("lookup path %q: %w", path, object.ErrNotFound)
}
