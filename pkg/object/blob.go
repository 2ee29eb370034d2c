package object

// Blob holds raw file data.
type Blob struct {
	base

	data []byte
}

// NewBlob returns an empty blob backed by db.
func NewBlob(db Database) *Blob {
	return &Blob{base: base{db: db}}
}

func (b *Blob) Kind() Type { return TypeBlob }

// Data returns the blob's bytes.
func (b *Blob) Data() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// SetData replaces the blob's bytes.
func (b *Blob) SetData(data []byte) {
	b.data = make([]byte, len(data))
	copy(b.data, data)
	b.dirty = true
}

// Size returns the byte length of the blob's data.
func (b *Blob) Size() int { return len(b.data) }

func (b *Blob) ReadRaw() ([]byte, error) {
	return b.readRaw(TypeBlob, b.encode)
}

func (b *Blob) Write() (ID, error) {
	return b.write(TypeBlob, b.encode)
}

func decodeBlob(db Database, id ID, data []byte) *Blob {
	b := &Blob{base: base{db: db, id: id, hasID: true}}
	b.data = make([]byte, len(data))
	copy(b.data, data)
	return b
}
