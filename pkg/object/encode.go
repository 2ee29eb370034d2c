package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Canonical text encodings. Commit and tag are header lines, a blank
// line, then the message; a tree is one line per entry; a blob is its
// data verbatim. Decoding is strict: unknown header keys and malformed
// lines are errors, never skipped.

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

func (c *Commit) encode() []byte {
	var buf bytes.Buffer
	if !c.tree.IsZero() {
		fmt.Fprintf(&buf, "tree %s\n", c.tree)
	}
	for _, p := range c.parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "author %s\n", c.author)
	fmt.Fprintf(&buf, "committer %s\n", c.committer)
	if c.signature != "" {
		fmt.Fprintf(&buf, "signature %s\n", c.signature)
	}
	buf.WriteByte('\n')
	buf.WriteString(c.message)
	return buf.Bytes()
}

func (c *Commit) decode(data []byte) error {
	header, message, err := splitHeader(data)
	if err != nil {
		return err
	}
	c.message = message

	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return fmt.Errorf("malformed header line %q", line)
		}
		switch key {
		case "tree":
			id, err := ParseID(val)
			if err != nil {
				return err
			}
			c.tree = id
		case "parent":
			id, err := ParseID(val)
			if err != nil {
				return err
			}
			c.parents = append(c.parents, id)
		case "author":
			sig, err := parseSignature(val)
			if err != nil {
				return err
			}
			c.author = sig
		case "committer":
			sig, err := parseSignature(val)
			if err != nil {
				return err
			}
			c.committer = sig
		case "signature":
			c.signature = val
		default:
			return fmt.Errorf("unknown header key %q", key)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Tree
// ---------------------------------------------------------------------------

func (t *Tree) encode() []byte {
	var buf bytes.Buffer
	for _, e := range t.entries {
		fmt.Fprintf(&buf, "%06o %s\t%s\n", e.mode, e.name, e.id)
	}
	return buf.Bytes()
}

func (t *Tree) decode(data []byte) error {
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil
	}
	for _, line := range strings.Split(text, "\n") {
		modeStr, rest, ok := strings.Cut(line, " ")
		if !ok {
			return fmt.Errorf("malformed entry %q", line)
		}
		mode, err := strconv.ParseUint(modeStr, 8, 32)
		if err != nil {
			return fmt.Errorf("malformed mode in entry %q: %w", line, err)
		}
		name, hexID, ok := strings.Cut(rest, "\t")
		if !ok {
			return fmt.Errorf("malformed entry %q", line)
		}
		id, err := ParseID(hexID)
		if err != nil {
			return fmt.Errorf("malformed id in entry %q: %w", line, err)
		}
		if err := validateEntryName(name); err != nil {
			return fmt.Errorf("malformed name in entry %q: %w", line, err)
		}
		if t.indexOf(name) >= 0 {
			return fmt.Errorf("duplicate entry name %q", name)
		}
		t.entries = append(t.entries, &TreeEntry{tree: t, name: name, mode: uint32(mode), id: id})
	}
	return nil
}

func decodeTree(db Database, id ID, data []byte) (*Tree, error) {
	t := &Tree{base: base{db: db, id: id, hasID: true}}
	if err := t.decode(data); err != nil {
		return nil, fmt.Errorf("decode tree %s: %w", id, err)
	}
	return t, nil
}

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

func (b *Blob) encode() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// ---------------------------------------------------------------------------
// Tag
// ---------------------------------------------------------------------------

func (t *Tag) encode() []byte {
	var buf bytes.Buffer
	if !t.target.IsZero() {
		fmt.Fprintf(&buf, "object %s\n", t.target)
		fmt.Fprintf(&buf, "type %s\n", t.targetType)
	}
	if t.name != "" {
		fmt.Fprintf(&buf, "tag %s\n", t.name)
	}
	fmt.Fprintf(&buf, "tagger %s\n", t.tagger)
	buf.WriteByte('\n')
	buf.WriteString(t.message)
	return buf.Bytes()
}

func (t *Tag) decode(data []byte) error {
	header, message, err := splitHeader(data)
	if err != nil {
		return err
	}
	t.message = message

	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return fmt.Errorf("malformed header line %q", line)
		}
		switch key {
		case "object":
			id, err := ParseID(val)
			if err != nil {
				return err
			}
			t.target = id
		case "type":
			typ, err := ParseType(val)
			if err != nil {
				return err
			}
			t.targetType = typ
		case "tag":
			t.name = val
		case "tagger":
			sig, err := parseSignature(val)
			if err != nil {
				return err
			}
			t.tagger = sig
		default:
			return fmt.Errorf("unknown header key %q", key)
		}
	}
	return nil
}

// splitHeader separates "headers\n\nbody" payloads.
func splitHeader(data []byte) (header, body string, err error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return "", "", fmt.Errorf("missing header/body separator")
	}
	return string(data[:idx]), string(data[idx+2:]), nil
}
