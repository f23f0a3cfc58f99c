package schema

import (
	"github.com/arloliu/keyframe/encoding"
	"github.com/arloliu/keyframe/format"
)

// Block describes one field of an entry: its position, the property name it
// binds to on records, its codec, and an optional P-frame compression.
type Block struct {
	// Codec encodes and decodes the field in I-frames.
	Codec encoding.BlockCodec

	// Compression, when non-nil, encodes the field in P-frames instead of
	// Codec. Its original primitive must match the codec's.
	Compression encoding.CompressionCodec

	// Property is the name used to bind the field to user records. Non-empty
	// and unique within a schema.
	Property string

	// Index is the field's position within an entry. Unique within a schema;
	// entries are laid out in ascending index order.
	Index int
}

// Fixed reports whether the block's codec has a fixed byte length.
func (b Block) Fixed() bool {
	return b.Codec.ByteLength() != format.VariableLength
}

// Compressed reports whether the block carries a P-frame compression.
func (b Block) Compressed() bool {
	return b.Compression != nil
}
