package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/keyframe/errs"
	"github.com/arloliu/keyframe/format"
	"github.com/arloliu/keyframe/value"
)

func encodeText(t *testing.T, enc format.StringEncoding, text string) []byte {
	t.Helper()

	codec, err := NewStringCodec(enc)
	require.NoError(t, err)

	out, err := codec.Append(nil, value.String(text))
	require.NoError(t, err)

	return out
}

func TestStringCodecGoldenBytes(t *testing.T) {
	cases := []struct {
		name string
		enc  format.StringEncoding
		text string
		want []byte
	}{
		{"ASCII", format.ASCII, "hi", []byte{0x68, 0x69}},
		{"UTF8", format.UTF8, "héllo"[:3], []byte{0x68, 0xC3, 0xA9}},
		{"Latin1", format.Latin1, "é", []byte{0xE9}},
		{"UTF16LE", format.UTF16LE, "é", []byte{0xE9, 0x00}},
		{"UTF16BE", format.UTF16BE, "é", []byte{0x00, 0xE9}},
		{"UTF32LE", format.UTF32LE, "é", []byte{0xE9, 0x00, 0x00, 0x00}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, encodeText(t, tc.enc, tc.text))
		})
	}
}

func TestStringCodecRoundTrip(t *testing.T) {
	// Texts chosen so every encoding can represent them.
	texts := map[format.StringEncoding]string{
		format.ASCII:   "plain ascii",
		format.Latin1:  "café",
		format.UTF8:    "héllo wörld 世界",
		format.UTF16LE: "世界",
		format.UTF16BE: "世界",
		format.UTF32LE: "héllo",
	}

	for enc, text := range texts {
		t.Run(enc.String(), func(t *testing.T) {
			codec, err := NewStringCodec(enc)
			require.NoError(t, err)
			require.Equal(t, enc, codec.Encoding())

			encoded, err := codec.Append(nil, value.String(text))
			require.NoError(t, err)

			decoded, err := codec.Decode(encoded)
			require.NoError(t, err)

			got, err := decoded.Text()
			require.NoError(t, err)
			require.Equal(t, text, got)
		})
	}
}

func TestStringCodecASCIIRejectsHighBytes(t *testing.T) {
	codec, err := NewStringCodec(format.ASCII)
	require.NoError(t, err)

	_, err = codec.Append(nil, value.String("café"))
	require.Error(t, err)

	_, err = codec.Decode([]byte{0x68, 0xE9})
	require.Error(t, err)
}

func TestStringCodecMalformedUTF8(t *testing.T) {
	codec, err := NewStringCodec(format.UTF8)
	require.NoError(t, err)

	_, err = codec.Decode([]byte{0xFF, 0xFE})
	require.Error(t, err)

	_, err = codec.Append(nil, value.String("ok\xff"))
	require.Error(t, err)
}

func TestStringCodecWrongValueType(t *testing.T) {
	codec, err := NewStringCodec(format.UTF8)
	require.NoError(t, err)

	_, err = codec.Append(nil, value.Bytes([]byte{1}))
	require.ErrorIs(t, err, errs.ErrPropertyBinding)
}

func TestNewStringCodecUnknownEncoding(t *testing.T) {
	_, err := NewStringCodec(format.EncodingInvalid)
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
}
