package encoding

import (
	"fmt"

	"github.com/arloliu/keyframe/endian"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/value"
)

// NumericCodec encodes one numeric primitive in little-endian representation:
// two's complement for signed integers, IEEE-754 for floats, one byte for
// bool (zero false, nonzero true), and the raw 16-bit unit for char16.
type NumericCodec struct {
	engine endian.EndianEngine
	prim   format.PrimitiveType
}

var _ BlockCodec = NumericCodec{}

// NewNumericCodec creates a block codec for the given primitive type.
//
// Returns:
//   - NumericCodec: The codec
//   - error: ErrUnsupportedType for an unknown primitive
func NewNumericCodec(prim format.PrimitiveType) (NumericCodec, error) {
	if !prim.Valid() {
		return NumericCodec{}, fmt.Errorf("%w: %d", errs.ErrUnsupportedType, uint8(prim))
	}

	return NumericCodec{prim: prim, engine: endian.GetLittleEndianEngine()}, nil
}

// Primitive returns the primitive type the codec encodes.
func (c NumericCodec) Primitive() format.PrimitiveType { return c.prim }

// KindName returns the persisted kind name.
func (c NumericCodec) KindName() string { return format.KindNumeric }

// ByteLength returns the primitive's encoded width.
func (c NumericCodec) ByteLength() int { return c.prim.Size() }

// Append encodes v in little-endian order and appends it to dst.
func (c NumericCodec) Append(dst []byte, v value.Value) ([]byte, error) {
	if v.Primitive() != c.prim {
		return dst, fmt.Errorf("%w: block encodes %s", errs.ErrPropertyBinding, c.prim)
	}

	bits, _ := v.Bits()

	switch c.prim.Size() {
	case 1:
		return append(dst, byte(bits)), nil
	case 2:
		return c.engine.AppendUint16(dst, uint16(bits)), nil
	case 4:
		return c.engine.AppendUint32(dst, uint32(bits)), nil
	default:
		return c.engine.AppendUint64(dst, bits), nil
	}
}

// Decode inverts Append. The input must be exactly ByteLength bytes.
func (c NumericCodec) Decode(data []byte) (value.Value, error) {
	if len(data) != c.prim.Size() {
		return value.Value{}, fmt.Errorf("%w: %s wants %d bytes, got %d",
			errs.ErrLengthMismatch, c.prim, c.prim.Size(), len(data))
	}

	var bits uint64
	switch c.prim.Size() {
	case 1:
		bits = uint64(data[0])
	case 2:
		bits = uint64(c.engine.Uint16(data))
	case 4:
		bits = uint64(c.engine.Uint32(data))
	default:
		bits = c.engine.Uint64(data)
	}

	if c.prim == format.Bool && bits != 0 {
		bits = 1
	}

	return value.FromBits(c.prim, bits), nil
}
