package encoding

import (
	"fmt"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/value"
)

// BlockEncodeFunc encodes a value for a user-defined block kind.
type BlockEncodeFunc func(v value.Value) ([]byte, error)

// BlockDecodeFunc decodes a user-defined block kind's bytes back to a value.
type BlockDecodeFunc func(data []byte) (value.Value, error)

// FuncBlockCodec is the open extension variant of BlockCodec: a user-supplied
// kind name, byte length and encode/decode pair. The optional custom payload
// is what schema JSON stores for the kind; the matching deserialization hook
// must rebuild the codec from it.
type FuncBlockCodec struct {
	encode     BlockEncodeFunc
	decode     BlockDecodeFunc
	kind       string
	custom     []string
	byteLength int
}

var _ BlockCodec = (*FuncBlockCodec)(nil)

// NewFuncBlockCodec creates a user-defined block codec.
//
// Parameters:
//   - kind: Kind name stored in schema JSON; must not collide with built-ins
//   - byteLength: Fixed width in bytes, or format.VariableLength
//   - encode, decode: The codec pair
func NewFuncBlockCodec(kind string, byteLength int, encode BlockEncodeFunc, decode BlockDecodeFunc) *FuncBlockCodec {
	return &FuncBlockCodec{
		kind:       kind,
		byteLength: byteLength,
		encode:     encode,
		decode:     decode,
	}
}

// WithCustom attaches the custom payload persisted in schema JSON and returns
// the codec for chaining.
func (c *FuncBlockCodec) WithCustom(custom ...string) *FuncBlockCodec {
	c.custom = custom
	return c
}

// CustomInfo returns the custom payload persisted in schema JSON.
func (c *FuncBlockCodec) CustomInfo() []string { return c.custom }

// KindName returns the user-supplied kind name.
func (c *FuncBlockCodec) KindName() string { return c.kind }

// ByteLength returns the advertised width.
func (c *FuncBlockCodec) ByteLength() int { return c.byteLength }

// Append encodes v with the user function, enforcing the advertised width for
// fixed-width kinds.
func (c *FuncBlockCodec) Append(dst []byte, v value.Value) ([]byte, error) {
	out, err := c.encode(v)
	if err != nil {
		return dst, err
	}

	if c.byteLength != format.VariableLength && len(out) != c.byteLength {
		return dst, fmt.Errorf("%w: %s produced %d bytes, declared %d",
			errs.ErrLengthMismatch, c.kind, len(out), c.byteLength)
	}

	return append(dst, out...), nil
}

// Decode decodes with the user function.
func (c *FuncBlockCodec) Decode(data []byte) (value.Value, error) {
	return c.decode(data)
}

// CompressFunc encodes a P-frame field for a user-defined compression kind.
type CompressFunc func(prev, curr value.Value) ([]byte, error)

// DecompressFunc reconstructs a value for a user-defined compression kind.
type DecompressFunc func(prev value.Value, data []byte) (value.Value, error)

// FuncCompressionCodec is the open extension variant of CompressionCodec.
type FuncCompressionCodec struct {
	compress   CompressFunc
	decompress DecompressFunc
	kind       string
	custom     []string
	pframeLen  int
}

var _ CompressionCodec = (*FuncCompressionCodec)(nil)

// NewFuncCompressionCodec creates a user-defined compression codec.
//
// Parameters:
//   - kind: Kind name stored in schema JSON; must not collide with built-ins
//   - pframeByteLength: Fixed P-frame width in bytes (zero is legal)
//   - compress, decompress: The codec pair
func NewFuncCompressionCodec(kind string, pframeByteLength int, compress CompressFunc, decompress DecompressFunc) *FuncCompressionCodec {
	return &FuncCompressionCodec{
		kind:       kind,
		pframeLen:  pframeByteLength,
		compress:   compress,
		decompress: decompress,
	}
}

// WithCustom attaches the custom payload persisted in schema JSON and returns
// the codec for chaining.
func (c *FuncCompressionCodec) WithCustom(custom ...string) *FuncCompressionCodec {
	c.custom = custom
	return c
}

// CustomInfo returns the custom payload persisted in schema JSON.
func (c *FuncCompressionCodec) CustomInfo() []string { return c.custom }

// KindName returns the user-supplied kind name.
func (c *FuncCompressionCodec) KindName() string { return c.kind }

// PFrameByteLength returns the advertised P-frame width.
func (c *FuncCompressionCodec) PFrameByteLength() int { return c.pframeLen }

// Compress encodes with the user function, enforcing the advertised width.
func (c *FuncCompressionCodec) Compress(dst []byte, prev, curr value.Value) ([]byte, error) {
	out, err := c.compress(prev, curr)
	if err != nil {
		return dst, err
	}

	if len(out) != c.pframeLen {
		return dst, fmt.Errorf("%w: %s produced %d bytes, declared %d",
			errs.ErrLengthMismatch, c.kind, len(out), c.pframeLen)
	}

	return append(dst, out...), nil
}

// Decompress reconstructs with the user function.
func (c *FuncCompressionCodec) Decompress(prev value.Value, data []byte) (value.Value, error) {
	if len(data) != c.pframeLen {
		return value.Value{}, fmt.Errorf("%w: %s wants %d bytes, got %d",
			errs.ErrLengthMismatch, c.kind, c.pframeLen, len(data))
	}

	return c.decompress(prev, data)
}
