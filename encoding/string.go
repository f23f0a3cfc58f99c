package encoding

import (
	"fmt"
	"unicode/utf8"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/value"
)

// StringCodec encodes Unicode text in one of the supported text encodings.
// It is variable-width; the encoded payload must not contain 0x00 or the
// stream terminator framing will cut it short. UTF-16 and UTF-32 payloads of
// ASCII text do contain zero bytes, so those encodings are only safe for
// code points whose units have no zero byte; the wire format inherits this
// limitation from its origin.
type StringCodec struct {
	transcoder xencoding.Encoding // nil for ASCII and UTF-8
	enc        format.StringEncoding
}

var _ BlockCodec = StringCodec{}

// NewStringCodec creates a block codec for the given text encoding.
//
// Returns:
//   - StringCodec: The codec
//   - error: ErrUnsupportedType for an unknown encoding
func NewStringCodec(enc format.StringEncoding) (StringCodec, error) {
	c := StringCodec{enc: enc}

	switch enc {
	case format.ASCII, format.UTF8:
		// handled without a transcoder
	case format.Latin1:
		c.transcoder = charmap.ISO8859_1
	case format.UTF16LE:
		c.transcoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case format.UTF16BE:
		c.transcoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case format.UTF32LE:
		c.transcoder = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	default:
		return StringCodec{}, fmt.Errorf("%w: string encoding %d", errs.ErrUnsupportedType, uint8(enc))
	}

	return c, nil
}

// Encoding returns the text encoding the codec transcodes to and from.
func (c StringCodec) Encoding() format.StringEncoding { return c.enc }

// KindName returns the persisted kind name.
func (c StringCodec) KindName() string { return format.KindString }

// ByteLength reports the variable-width sentinel.
func (c StringCodec) ByteLength() int { return format.VariableLength }

// Append transcodes the string payload and appends it to dst.
func (c StringCodec) Append(dst []byte, v value.Value) ([]byte, error) {
	text, err := v.Text()
	if err != nil {
		return dst, fmt.Errorf("%w: block encodes string", errs.ErrPropertyBinding)
	}

	switch c.enc {
	case format.ASCII:
		for i := 0; i < len(text); i++ {
			if text[i] > 0x7F {
				return dst, fmt.Errorf("rune at byte %d is not ASCII", i)
			}
		}

		return append(dst, text...), nil
	case format.UTF8:
		if !utf8.ValidString(text) {
			return dst, fmt.Errorf("text is not valid UTF-8")
		}

		return append(dst, text...), nil
	default:
		encoded, err := c.transcoder.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return dst, fmt.Errorf("encode %s: %w", c.enc, err)
		}

		return append(dst, encoded...), nil
	}
}

// Decode transcodes the payload back into a string value. Malformed input
// surfaces as an error to the caller.
func (c StringCodec) Decode(data []byte) (value.Value, error) {
	switch c.enc {
	case format.ASCII:
		for i, b := range data {
			if b > 0x7F {
				return value.Value{}, fmt.Errorf("byte %d is not ASCII", i)
			}
		}

		return value.String(string(data)), nil
	case format.UTF8:
		if !utf8.Valid(data) {
			return value.Value{}, fmt.Errorf("payload is not valid UTF-8")
		}

		return value.String(string(data)), nil
	default:
		decoded, err := c.transcoder.NewDecoder().Bytes(data)
		if err != nil {
			return value.Value{}, fmt.Errorf("decode %s: %w", c.enc, err)
		}

		return value.String(string(decoded)), nil
	}
}
