// Package value implements the tagged value union carried by data entries.
//
// A Value is one of three shapes: a numeric primitive (stored as a uint64 bit
// pattern plus its format.PrimitiveType), a raw byte sequence, or a Unicode
// string. Values are immutable; the Bytes constructor copies its input.
package value

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
)

// Kind identifies the shape of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNumeric
	KindBytes
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a tagged union over the numeric primitives, raw bytes, and strings.
// The zero Value is invalid.
type Value struct {
	str  string
	raw  []byte
	bits uint64
	prim format.PrimitiveType
	kind Kind
}

// Entry is one record: an ordered tuple of values matching a schema's block
// list, entry[i] corresponding to the i-th block in index order.
type Entry []Value

// Equal reports whether two entries have the same length and equal values.
func (e Entry) Equal(other Entry) bool {
	return slices.EqualFunc(e, other, Value.Equal)
}

func numeric(p format.PrimitiveType, bits uint64) Value {
	return Value{kind: KindNumeric, prim: p, bits: bits}
}

// Uint8 returns a numeric value of primitive type uint8.
func Uint8(v uint8) Value { return numeric(format.Uint8, uint64(v)) }

// Int8 returns a numeric value of primitive type int8.
func Int8(v int8) Value { return numeric(format.Int8, uint64(uint8(v))) }

// Bool returns a numeric value of primitive type bool.
func Bool(v bool) Value {
	var bits uint64
	if v {
		bits = 1
	}

	return numeric(format.Bool, bits)
}

// Char16 returns a numeric value holding one 16-bit code unit.
func Char16(v uint16) Value { return numeric(format.Char16, uint64(v)) }

// Int16 returns a numeric value of primitive type int16.
func Int16(v int16) Value { return numeric(format.Int16, uint64(uint16(v))) }

// Uint16 returns a numeric value of primitive type uint16.
func Uint16(v uint16) Value { return numeric(format.Uint16, uint64(v)) }

// Int32 returns a numeric value of primitive type int32.
func Int32(v int32) Value { return numeric(format.Int32, uint64(uint32(v))) }

// Uint32 returns a numeric value of primitive type uint32.
func Uint32(v uint32) Value { return numeric(format.Uint32, uint64(v)) }

// Int64 returns a numeric value of primitive type int64.
func Int64(v int64) Value { return numeric(format.Int64, uint64(v)) }

// Uint64 returns a numeric value of primitive type uint64.
func Uint64(v uint64) Value { return numeric(format.Uint64, v) }

// Float32 returns a numeric value of primitive type float32.
func Float32(v float32) Value { return numeric(format.Float32, uint64(math.Float32bits(v))) }

// Float64 returns a numeric value of primitive type float64.
func Float64(v float64) Value { return numeric(format.Float64, math.Float64bits(v)) }

// Bytes returns a value holding a copy of the given byte sequence.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, raw: slices.Clone(b)}
}

// String returns a value holding the given text.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// FromBits constructs a numeric value of primitive type p from a raw bit
// pattern, masked to the primitive's width.
func FromBits(p format.PrimitiveType, bits uint64) Value {
	return numeric(p, bits&widthMask(p))
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// Primitive returns the numeric primitive type, or PrimitiveInvalid for
// non-numeric values.
func (v Value) Primitive() format.PrimitiveType {
	if v.kind != KindNumeric {
		return format.PrimitiveInvalid
	}

	return v.prim
}

// Bits returns the raw bit pattern of a numeric value.
func (v Value) Bits() (uint64, bool) {
	if v.kind != KindNumeric {
		return 0, false
	}

	return v.bits, true
}

func (v Value) numericAs(p format.PrimitiveType) (uint64, error) {
	if v.kind != KindNumeric || v.prim != p {
		return 0, fmt.Errorf("%w: value is %s, want %s", errs.ErrPropertyBinding, v.describe(), p)
	}

	return v.bits, nil
}

func (v Value) describe() string {
	if v.kind == KindNumeric {
		return v.prim.String()
	}

	return v.kind.String()
}

// Uint8 returns the payload of a uint8 value.
func (v Value) Uint8() (uint8, error) {
	bits, err := v.numericAs(format.Uint8)
	return uint8(bits), err
}

// Int8 returns the payload of an int8 value.
func (v Value) Int8() (int8, error) {
	bits, err := v.numericAs(format.Int8)
	return int8(uint8(bits)), err
}

// Bool returns the payload of a bool value.
func (v Value) Bool() (bool, error) {
	bits, err := v.numericAs(format.Bool)
	return bits != 0, err
}

// Char16 returns the payload of a char16 value.
func (v Value) Char16() (uint16, error) {
	bits, err := v.numericAs(format.Char16)
	return uint16(bits), err
}

// Int16 returns the payload of an int16 value.
func (v Value) Int16() (int16, error) {
	bits, err := v.numericAs(format.Int16)
	return int16(uint16(bits)), err
}

// Uint16 returns the payload of a uint16 value.
func (v Value) Uint16() (uint16, error) {
	bits, err := v.numericAs(format.Uint16)
	return uint16(bits), err
}

// Int32 returns the payload of an int32 value.
func (v Value) Int32() (int32, error) {
	bits, err := v.numericAs(format.Int32)
	return int32(uint32(bits)), err
}

// Uint32 returns the payload of a uint32 value.
func (v Value) Uint32() (uint32, error) {
	bits, err := v.numericAs(format.Uint32)
	return uint32(bits), err
}

// Int64 returns the payload of an int64 value.
func (v Value) Int64() (int64, error) {
	bits, err := v.numericAs(format.Int64)
	return int64(bits), err
}

// Uint64 returns the payload of a uint64 value.
func (v Value) Uint64() (uint64, error) {
	return v.numericAs(format.Uint64)
}

// Float32 returns the payload of a float32 value.
func (v Value) Float32() (float32, error) {
	bits, err := v.numericAs(format.Float32)
	return math.Float32frombits(uint32(bits)), err
}

// Float64 returns the payload of a float64 value.
func (v Value) Float64() (float64, error) {
	bits, err := v.numericAs(format.Float64)
	return math.Float64frombits(bits), err
}

// Raw returns the payload of a bytes value. The returned slice must not be
// modified.
func (v Value) Raw() ([]byte, error) {
	if v.kind != KindBytes {
		return nil, fmt.Errorf("%w: value is %s, want bytes", errs.ErrPropertyBinding, v.describe())
	}

	return v.raw, nil
}

// Text returns the payload of a string value.
func (v Value) Text() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("%w: value is %s, want string", errs.ErrPropertyBinding, v.describe())
	}

	return v.str, nil
}

// Equal reports whether two values have the same kind, type and payload.
// Numeric equality compares bit patterns, so NaN equals NaN of the same bits.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNumeric:
		return v.prim == other.prim && v.bits == other.bits
	case KindBytes:
		return slices.Equal(v.raw, other.raw)
	case KindString:
		return v.str == other.str
	default:
		return true
	}
}
