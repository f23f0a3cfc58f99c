// Package format defines the type vocabulary of the keyframe wire format:
// the numeric primitive types a block may carry, the text encodings a string
// block may use, and the kind names under which blocks and compressions are
// persisted in schema JSON.
package format

import (
	"fmt"

	"github.com/arloliu/keyframe/errs"
)

// PrimitiveType identifies one of the numeric primitive types a block value
// may carry on the wire.
type PrimitiveType uint8

const (
	PrimitiveInvalid PrimitiveType = iota

	Uint8
	Int8
	Bool   // one byte, zero is false, nonzero is true
	Char16 // one unsigned 16-bit code unit
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
)

// VariableLength is the byte-length value advertised by variable-width block
// codecs. The stream layer frames such fields with a one-byte terminator.
const VariableLength = -1

// Kind names used in persisted schema JSON. Built-in kinds serialize under
// their short name; type parameters serialize under the full primitive or
// encoding name (see ParsePrimitiveType and ParseStringEncoding).
const (
	KindNumeric      = "Numeric"
	KindBytes        = "Bytes"
	KindString       = "String"
	KindIFrameOnly   = "IFrameOnly"
	KindNumericDelta = "NumericDelta"
)

// Size returns the encoded width of the primitive in bytes.
func (p PrimitiveType) Size() int {
	switch p {
	case Uint8, Int8, Bool:
		return 1
	case Char16, Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether p is one of the supported primitive types.
func (p PrimitiveType) Valid() bool {
	return p.Size() != 0
}

// IsFloat reports whether p is an IEEE-754 floating point type.
func (p PrimitiveType) IsFloat() bool {
	return p == Float32 || p == Float64
}

// IsInteger reports whether p carries an integral bit pattern.
// Bool and Char16 count as integers for delta arithmetic purposes.
func (p PrimitiveType) IsInteger() bool {
	return p.Valid() && !p.IsFloat()
}

// IsSigned reports whether p is a signed integer type. Deltas decoded from a
// signed primitive are sign-extended; unsigned deltas are zero-extended.
func (p PrimitiveType) IsSigned() bool {
	switch p {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

func (p PrimitiveType) String() string {
	switch p {
	case Uint8:
		return "uint8"
	case Int8:
		return "int8"
	case Bool:
		return "bool"
	case Char16:
		return "char16"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Int64:
		return "int64"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

var primitiveNames = map[string]PrimitiveType{
	"uint8":   Uint8,
	"int8":    Int8,
	"bool":    Bool,
	"char16":  Char16,
	"int16":   Int16,
	"uint16":  Uint16,
	"int32":   Int32,
	"uint32":  Uint32,
	"int64":   Int64,
	"uint64":  Uint64,
	"float32": Float32,
	"float64": Float64,
}

// ParsePrimitiveType inverts PrimitiveType.String.
//
// Returns:
//   - PrimitiveType: The parsed primitive type
//   - error: ErrUnsupportedType when the name matches no primitive
func ParsePrimitiveType(name string) (PrimitiveType, error) {
	if p, ok := primitiveNames[name]; ok {
		return p, nil
	}

	return PrimitiveInvalid, fmt.Errorf("%w: %q", errs.ErrUnsupportedType, name)
}

// StringEncoding identifies the text encoding of a string block's payload.
type StringEncoding uint8

const (
	EncodingInvalid StringEncoding = iota

	ASCII
	Latin1
	UTF16LE
	UTF16BE
	UTF8
	UTF32LE
)

func (e StringEncoding) String() string {
	switch e {
	case ASCII:
		return "ASCII"
	case Latin1:
		return "Latin1"
	case UTF16LE:
		return "UTF16LE"
	case UTF16BE:
		return "UTF16BE"
	case UTF8:
		return "UTF8"
	case UTF32LE:
		return "UTF32LE"
	default:
		return "invalid"
	}
}

var encodingNames = map[string]StringEncoding{
	"ASCII":   ASCII,
	"Latin1":  Latin1,
	"UTF16LE": UTF16LE,
	"UTF16BE": UTF16BE,
	"UTF8":    UTF8,
	"UTF32LE": UTF32LE,
}

// ParseStringEncoding inverts StringEncoding.String.
//
// Returns:
//   - StringEncoding: The parsed encoding
//   - error: ErrUnsupportedType when the name matches no encoding
func ParseStringEncoding(name string) (StringEncoding, error) {
	if e, ok := encodingNames[name]; ok {
		return e, nil
	}

	return EncodingInvalid, fmt.Errorf("%w: %q", errs.ErrUnsupportedType, name)
}
