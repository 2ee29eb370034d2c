package object

import (
	"fmt"
	"unicode/utf8"
)

// Tag is an annotated tag: a named, signed-off pointer at another
// object, carrying its own message.
type Tag struct {
	base

	target     ID
	targetType Type
	name       string
	tagger     Signature
	message    string
}

// NewTag returns an empty tag backed by db.
func NewTag(db Database) *Tag {
	return &Tag{base: base{db: db}}
}

func (t *Tag) Kind() Type { return TypeTag }

// Target returns the id the tag points at. ok is false when no target
// has been set.
func (t *Tag) Target() (ID, bool) {
	return t.target, !t.target.IsZero()
}

// TargetType returns the declared kind of the target object.
func (t *Tag) TargetType() Type { return t.targetType }

// SetTarget points the tag at an object by hex id, recording the
// target's declared kind. Forward references are legal.
func (t *Tag) SetTarget(hexID string, targetType Type) error {
	id, err := ParseID(hexID)
	if err != nil {
		return fmt.Errorf("set tag target: %w", err)
	}
	if !targetType.Valid() {
		return fmt.Errorf("set tag target: %w", ErrUnknownType)
	}
	t.target = id
	t.targetType = targetType
	t.dirty = true
	return nil
}

// Name returns the tag name.
func (t *Tag) Name() string { return t.name }

// SetName replaces the tag name.
func (t *Tag) SetName(name string) error {
	if err := validateEntryName(name); err != nil {
		return fmt.Errorf("set tag name: %w", err)
	}
	t.name = name
	t.dirty = true
	return nil
}

// Tagger returns the tagger identity triple.
func (t *Tag) Tagger() Signature { return t.tagger }

// SetTagger replaces the tagger. Validation failures leave the prior
// value unchanged.
func (t *Tag) SetTagger(sig Signature) error {
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("set tagger: %w", err)
	}
	t.tagger = sig
	t.dirty = true
	return nil
}

// Message returns the tag message.
func (t *Tag) Message() string { return t.message }

// SetMessage replaces the tag message. The message must be valid UTF-8.
func (t *Tag) SetMessage(message string) error {
	if !utf8.ValidString(message) {
		return fmt.Errorf("set tag message: not valid UTF-8: %w", ErrInvalidArgument)
	}
	t.message = message
	t.dirty = true
	return nil
}

func (t *Tag) ReadRaw() ([]byte, error) {
	return t.readRaw(TypeTag, t.encode)
}

func (t *Tag) Write() (ID, error) {
	return t.write(TypeTag, t.encode)
}

func decodeTag(db Database, id ID, data []byte) (*Tag, error) {
	t := &Tag{base: base{db: db, id: id, hasID: true}}
	if err := t.decode(data); err != nil {
		return nil, fmt.Errorf("decode tag %s: %w", id, err)
	}
	return t, nil
}
