package object

// Database is the storage collaborator behind a repository. The object
// model never interprets how bytes reach disk; it only relies on the
// content-addressing contract: Write returns the id under which Read
// will serve the same type tag and bytes back.
type Database interface {
	// Exists reports whether the store holds an object with the id.
	Exists(id ID) bool

	// Read returns the stored type tag and content for id. A missing
	// object fails with an error satisfying errors.Is(err, ErrNotFound).
	Read(id ID) (Type, []byte, error)

	// Write stores content under its content hash and returns that id.
	// Storing an already-present object is a no-op returning its id.
	Write(t Type, data []byte) (ID, error)
}
