package encoding

import (
	"fmt"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/value"
)

// CompressionCodec encodes one field of a P-frame entry relative to the
// previous entry's value for the same block.
//
// Implementations are stateless; the stream layer owns the previous-entry
// state and hands it in on every call.
type CompressionCodec interface {
	// KindName returns the kind name the codec serializes under in schema JSON.
	KindName() string

	// PFrameByteLength returns the fixed number of bytes the codec emits per
	// P-frame field. Zero for carry-forward codecs.
	PFrameByteLength() int

	// Compress appends exactly PFrameByteLength bytes encoding curr relative
	// to prev.
	Compress(dst []byte, prev, curr value.Value) ([]byte, error)

	// Decompress reconstructs the current value from the previous one and
	// exactly PFrameByteLength bytes.
	Decompress(prev value.Value, data []byte) (value.Value, error)
}

// NewCompressionCodec reconstructs a built-in compression codec from its
// persisted kind name and custom payload.
//
// Parameters:
//   - kind: Kind name as stored in schema JSON (IFrameOnly or NumericDelta)
//   - custom: The kind's custom payload (two primitive names for NumericDelta)
//
// Returns:
//   - CompressionCodec: The reconstructed codec
//   - error: ErrUnknownCompressionKind for foreign kinds, ErrUnsupportedType for bad payloads
func NewCompressionCodec(kind string, custom []string) (CompressionCodec, error) {
	switch kind {
	case format.KindIFrameOnly:
		return IFrameOnlyCodec{}, nil
	case format.KindNumericDelta:
		if len(custom) != 2 {
			return nil, fmt.Errorf("%w: NumericDelta wants two type parameters, got %d",
				errs.ErrUnsupportedType, len(custom))
		}

		orig, err := format.ParsePrimitiveType(custom[0])
		if err != nil {
			return nil, err
		}

		delta, err := format.ParsePrimitiveType(custom[1])
		if err != nil {
			return nil, err
		}

		return NewNumericDeltaCodec(orig, delta)
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownCompressionKind, kind)
	}
}
