package encoding

import (
	"fmt"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/value"
)

// BytesCodec encodes a raw byte sequence verbatim. It is variable-width; the
// stream layer frames the payload with a one-byte terminator, which means a
// payload containing 0x00 will not round-trip. That restriction belongs to
// the wire format, not to this codec.
type BytesCodec struct{}

var _ BlockCodec = BytesCodec{}

// KindName returns the persisted kind name.
func (BytesCodec) KindName() string { return format.KindBytes }

// ByteLength reports the variable-width sentinel.
func (BytesCodec) ByteLength() int { return format.VariableLength }

// Append appends the payload bytes verbatim.
func (BytesCodec) Append(dst []byte, v value.Value) ([]byte, error) {
	raw, err := v.Raw()
	if err != nil {
		return dst, fmt.Errorf("%w: block encodes bytes", errs.ErrPropertyBinding)
	}

	return append(dst, raw...), nil
}

// Decode copies the payload into a fresh bytes value.
func (BytesCodec) Decode(data []byte) (value.Value, error) {
	return value.Bytes(data), nil
}
