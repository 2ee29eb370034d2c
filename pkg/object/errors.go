package object

import "errors"

var (
	// ErrNotFound reports an object, entry or path that does not exist.
	ErrNotFound = errors.New("object not found")

	// ErrInvalidArgument reports malformed input: bad hex, a bad
	// identity triple, or a duplicate tree-entry name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIndexOutOfRange reports positional tree access outside
	// [-len, len).
	ErrIndexOutOfRange = errors.New("tree index out of range")

	// ErrStorage reports a database write or allocation failure.
	ErrStorage = errors.New("object storage failure")

	// ErrInvalidOperation reports an unsupported mutation, such as
	// replacing a tree entry in place.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrUnknownType reports a database type tag outside the four
	// known object kinds. It signals database corruption or a broken
	// collaborator and is never coerced to a default variant.
	ErrUnknownType = errors.New("unknown object type")
)
