package object

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Commit is a structured view over a commit object: a message, the two
// identity triples, the tree it snapshots and its parent commits.
type Commit struct {
	base

	message   string
	author    Signature
	committer Signature
	tree      ID
	parents   []ID
	signature string
}

// NewCommit returns an empty commit backed by db. It has no id until
// the first Write.
func NewCommit(db Database) *Commit {
	return &Commit{base: base{db: db}}
}

func (c *Commit) Kind() Type { return TypeCommit }

// Message returns the full commit message.
func (c *Commit) Message() string { return c.message }

// SetMessage replaces the commit message. The message must be valid
// UTF-8; on rejection the prior message is left unchanged.
func (c *Commit) SetMessage(message string) error {
	if !utf8.ValidString(message) {
		return fmt.Errorf("set message: not valid UTF-8: %w", ErrInvalidArgument)
	}
	c.message = message
	c.dirty = true
	return nil
}

// Summary returns the first line of the message.
func (c *Commit) Summary() string {
	if i := strings.IndexByte(c.message, '\n'); i >= 0 {
		return c.message[:i]
	}
	return c.message
}

// Author returns the author identity triple.
func (c *Commit) Author() Signature { return c.author }

// SetAuthor replaces the author. Validation failures leave the prior
// value unchanged.
func (c *Commit) SetAuthor(sig Signature) error {
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("set author: %w", err)
	}
	c.author = sig
	c.dirty = true
	return nil
}

// Committer returns the committer identity triple.
func (c *Commit) Committer() Signature { return c.committer }

// SetCommitter replaces the committer. Validation failures leave the
// prior value unchanged.
func (c *Commit) SetCommitter(sig Signature) error {
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("set committer: %w", err)
	}
	c.committer = sig
	c.dirty = true
	return nil
}

// CommitTime returns the commit timestamp. It is derived from the
// committer triple and not independently settable.
func (c *Commit) CommitTime() int64 { return c.committer.When }

// Tree returns the id of the tree this commit snapshots. ok is false
// when no tree has been set.
func (c *Commit) Tree() (ID, bool) {
	return c.tree, !c.tree.IsZero()
}

// SetTree points the commit at a tree by hex id. The tree may not be
// written yet; forward references are legal.
func (c *Commit) SetTree(hexID string) error {
	id, err := ParseID(hexID)
	if err != nil {
		return fmt.Errorf("set tree: %w", err)
	}
	c.tree = id
	c.dirty = true
	return nil
}

// Parents returns the parent commit ids in order.
func (c *Commit) Parents() []ID {
	out := make([]ID, len(c.parents))
	copy(out, c.parents)
	return out
}

// AddParent appends a parent commit by hex id.
func (c *Commit) AddParent(hexID string) error {
	id, err := ParseID(hexID)
	if err != nil {
		return fmt.Errorf("add parent: %w", err)
	}
	c.parents = append(c.parents, id)
	c.dirty = true
	return nil
}

// Signature returns the detached signature string, if any.
func (c *Commit) Signature() string { return c.signature }

// SetSignature attaches an encoded signature produced over
// SigningPayload. Signatures are single-line by construction.
func (c *Commit) SetSignature(signature string) error {
	if strings.ContainsAny(signature, "\n\r") {
		return fmt.Errorf("set signature: must be single-line: %w", ErrInvalidArgument)
	}
	c.signature = signature
	c.dirty = true
	return nil
}

// SigningPayload returns the canonical bytes to be signed: the commit
// encoding with the signature header itself excluded.
func (c *Commit) SigningPayload() []byte {
	unsigned := *c
	unsigned.signature = ""
	return unsigned.encode()
}

func (c *Commit) ReadRaw() ([]byte, error) {
	return c.readRaw(TypeCommit, c.encode)
}

func (c *Commit) Write() (ID, error) {
	return c.write(TypeCommit, c.encode)
}

func decodeCommit(db Database, id ID, data []byte) (*Commit, error) {
	c := &Commit{base: base{db: db, id: id, hasID: true}}
	if err := c.decode(data); err != nil {
		return nil, fmt.Errorf("decode commit %s: %w", id, err)
	}
	return c, nil
}
