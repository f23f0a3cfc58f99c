package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/keyframe/endian"
	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/value"
)

// NumericDeltaCodec encodes a P-frame field as the difference between the
// current and previous value, cast to a (typically narrower) delta primitive
// and written little-endian.
//
// Integer differences are computed in the original primitive's wrapping
// arithmetic for every width, so encode and decode agree on all hosts. The
// round trip is exact whenever the true difference fits the delta primitive;
// out-of-range differences wrap silently, which is the documented overflow
// behavior of the format.
//
// Float originals use IEEE float subtraction and require a float delta
// primitive; narrowing to float32 loses precision like any float32 cast.
type NumericDeltaCodec struct {
	engine endian.EndianEngine
	orig   format.PrimitiveType
	delta  format.PrimitiveType
}

var _ CompressionCodec = NumericDeltaCodec{}

// NewNumericDeltaCodec creates a delta codec for the given original and delta
// primitive types.
//
// Returns:
//   - NumericDeltaCodec: The codec
//   - error: ErrUnsupportedType for unknown primitives, ErrIncompatibleCompression
//     when mixing integer and float classes
func NewNumericDeltaCodec(orig, delta format.PrimitiveType) (NumericDeltaCodec, error) {
	if !orig.Valid() {
		return NumericDeltaCodec{}, fmt.Errorf("%w: original %d", errs.ErrUnsupportedType, uint8(orig))
	}
	if !delta.Valid() {
		return NumericDeltaCodec{}, fmt.Errorf("%w: delta %d", errs.ErrUnsupportedType, uint8(delta))
	}
	if orig.IsFloat() != delta.IsFloat() {
		return NumericDeltaCodec{}, fmt.Errorf("%w: %s delta for %s original",
			errs.ErrIncompatibleCompression, delta, orig)
	}

	return NumericDeltaCodec{orig: orig, delta: delta, engine: endian.GetLittleEndianEngine()}, nil
}

// Primitives returns the original and delta primitive types.
func (c NumericDeltaCodec) Primitives() (orig, delta format.PrimitiveType) {
	return c.orig, c.delta
}

// KindName returns the persisted kind name.
func (c NumericDeltaCodec) KindName() string { return format.KindNumericDelta }

// PFrameByteLength returns the delta primitive's width.
func (c NumericDeltaCodec) PFrameByteLength() int { return c.delta.Size() }

func (c NumericDeltaCodec) operandBits(v value.Value, role string) (uint64, error) {
	if v.Primitive() != c.orig {
		return 0, fmt.Errorf("%w: %s value is not %s", errs.ErrPropertyBinding, role, c.orig)
	}

	bits, _ := v.Bits()

	return bits, nil
}

// Compress appends the delta between curr and prev, cast to the delta
// primitive, in little-endian order.
func (c NumericDeltaCodec) Compress(dst []byte, prev, curr value.Value) ([]byte, error) {
	prevBits, err := c.operandBits(prev, "previous")
	if err != nil {
		return dst, err
	}

	currBits, err := c.operandBits(curr, "current")
	if err != nil {
		return dst, err
	}

	var deltaBits uint64
	if c.orig.IsFloat() {
		deltaBits = c.floatDeltaBits(prevBits, currBits)
	} else {
		diff := value.SubBits(c.orig, prevBits, currBits)
		// Widen in the original primitive, then truncate to the delta width.
		deltaBits = uint64(value.Extend(c.orig, diff))
	}

	return c.appendBits(dst, deltaBits), nil
}

// Decompress reads the delta and re-applies it to the previous value in the
// original primitive's arithmetic.
func (c NumericDeltaCodec) Decompress(prev value.Value, data []byte) (value.Value, error) {
	if len(data) != c.delta.Size() {
		return value.Value{}, fmt.Errorf("%w: %s delta wants %d bytes, got %d",
			errs.ErrLengthMismatch, c.delta, c.delta.Size(), len(data))
	}

	prevBits, err := c.operandBits(prev, "previous")
	if err != nil {
		return value.Value{}, err
	}

	deltaBits := c.readBits(data)

	if c.orig.IsFloat() {
		return value.FromBits(c.orig, c.floatAddBits(prevBits, deltaBits)), nil
	}

	d := value.Extend(c.delta, deltaBits)

	return value.FromBits(c.orig, value.AddBits(c.orig, prevBits, uint64(d))), nil
}

func (c NumericDeltaCodec) floatDeltaBits(prevBits, currBits uint64) uint64 {
	var diff float64
	if c.orig == format.Float32 {
		diff = float64(math.Float32frombits(uint32(currBits)) - math.Float32frombits(uint32(prevBits)))
	} else {
		diff = math.Float64frombits(currBits) - math.Float64frombits(prevBits)
	}

	if c.delta == format.Float32 {
		return uint64(math.Float32bits(float32(diff)))
	}

	return math.Float64bits(diff)
}

func (c NumericDeltaCodec) floatAddBits(prevBits, deltaBits uint64) uint64 {
	var diff float64
	if c.delta == format.Float32 {
		diff = float64(math.Float32frombits(uint32(deltaBits)))
	} else {
		diff = math.Float64frombits(deltaBits)
	}

	if c.orig == format.Float32 {
		return uint64(math.Float32bits(math.Float32frombits(uint32(prevBits)) + float32(diff)))
	}

	return math.Float64bits(math.Float64frombits(prevBits) + diff)
}

func (c NumericDeltaCodec) appendBits(dst []byte, bits uint64) []byte {
	switch c.delta.Size() {
	case 1:
		return append(dst, byte(bits))
	case 2:
		return c.engine.AppendUint16(dst, uint16(bits))
	case 4:
		return c.engine.AppendUint32(dst, uint32(bits))
	default:
		return c.engine.AppendUint64(dst, bits)
	}
}

func (c NumericDeltaCodec) readBits(data []byte) uint64 {
	switch c.delta.Size() {
	case 1:
		return uint64(data[0])
	case 2:
		return uint64(c.engine.Uint16(data))
	case 4:
		return uint64(c.engine.Uint32(data))
	default:
		return c.engine.Uint64(data)
	}
}
