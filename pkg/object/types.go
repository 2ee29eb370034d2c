package object

import "fmt"

// Type is the integer tag identifying the kind of a stored object.
// The values are part of the database contract and must not change.
type Type int

const (
	TypeCommit Type = 1
	TypeTree   Type = 2
	TypeBlob   Type = 3
	TypeTag    Type = 4
)

// Tree entry modes, matching Git's canonical octal file modes.
const (
	ModeDir        uint32 = 0o040000
	ModeFile       uint32 = 0o100644
	ModeExecutable uint32 = 0o100755
	ModeSymlink    uint32 = 0o120000
)

// String returns the canonical lowercase name of the type.
func (t Type) String() string {
	switch t {
	case TypeCommit:
		return "commit"
	case TypeTree:
		return "tree"
	case TypeBlob:
		return "blob"
	case TypeTag:
		return "tag"
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Valid reports whether t is one of the four known object kinds.
func (t Type) Valid() bool {
	return t >= TypeCommit && t <= TypeTag
}

// ParseType maps a canonical type name back to its tag.
func ParseType(name string) (Type, error) {
	switch name {
	case "commit":
		return TypeCommit, nil
	case "tree":
		return TypeTree, nil
	case "blob":
		return TypeBlob, nil
	case "tag":
		return TypeTag, nil
	}
	return 0, fmt.Errorf("parse type %q: %w", name, ErrUnknownType)
}
