package encoding

import (
	"fmt"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/value"
)

// IFrameOnlyCodec writes a field only in I-frames. P-frames contribute zero
// bytes and the decoder carries the previous value forward verbatim.
type IFrameOnlyCodec struct{}

var _ CompressionCodec = IFrameOnlyCodec{}

// KindName returns the persisted kind name.
func (IFrameOnlyCodec) KindName() string { return format.KindIFrameOnly }

// PFrameByteLength is zero: P-frames carry nothing for this field.
func (IFrameOnlyCodec) PFrameByteLength() int { return 0 }

// Compress appends nothing.
func (IFrameOnlyCodec) Compress(dst []byte, _, _ value.Value) ([]byte, error) {
	return dst, nil
}

// Decompress returns the previous value unchanged.
func (IFrameOnlyCodec) Decompress(prev value.Value, data []byte) (value.Value, error) {
	if len(data) != 0 {
		return value.Value{}, fmt.Errorf("%w: IFrameOnly wants 0 bytes, got %d", errs.ErrLengthMismatch, len(data))
	}

	return prev, nil
}
