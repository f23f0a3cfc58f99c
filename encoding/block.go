package encoding

import (
	"fmt"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/value"
)

// BlockCodec encodes and decodes one field of an entry.
//
// Implementations are stateless and safe to share between schemas.
type BlockCodec interface {
	// KindName returns the kind name the codec serializes under in schema JSON.
	KindName() string

	// ByteLength returns the fixed encoded width in bytes, or
	// format.VariableLength for variable-width codecs.
	ByteLength() int

	// Append encodes v and appends the encoded bytes to dst.
	// Variable-width codecs append the bare payload; the stream layer adds
	// the terminator.
	Append(dst []byte, v value.Value) ([]byte, error)

	// Decode decodes the field's bytes back into a value. Fixed-width codecs
	// receive exactly ByteLength bytes; variable-width codecs receive the
	// payload without its terminator.
	Decode(data []byte) (value.Value, error)
}

// NewBlockCodec reconstructs a built-in block codec from its persisted kind
// name and custom payload.
//
// Parameters:
//   - kind: Kind name as stored in schema JSON (Numeric, Bytes or String)
//   - custom: The kind's custom payload (primitive name, encoding name, or empty)
//
// Returns:
//   - BlockCodec: The reconstructed codec
//   - error: ErrUnknownBlockKind for foreign kinds, ErrUnsupportedType for bad payloads
func NewBlockCodec(kind string, custom []string) (BlockCodec, error) {
	switch kind {
	case format.KindNumeric:
		if len(custom) != 1 {
			return nil, fmt.Errorf("%w: Numeric wants one type parameter, got %d", errs.ErrUnsupportedType, len(custom))
		}

		prim, err := format.ParsePrimitiveType(custom[0])
		if err != nil {
			return nil, err
		}

		return NewNumericCodec(prim)
	case format.KindBytes:
		return BytesCodec{}, nil
	case format.KindString:
		if len(custom) != 1 {
			return nil, fmt.Errorf("%w: String wants one encoding parameter, got %d", errs.ErrUnsupportedType, len(custom))
		}

		enc, err := format.ParseStringEncoding(custom[0])
		if err != nil {
			return nil, err
		}

		return NewStringCodec(enc)
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownBlockKind, kind)
	}
}
