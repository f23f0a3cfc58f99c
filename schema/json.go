package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arloliu/keyframe/encoding"
	"github.com/arloliu/keyframe/errs"
)

// SerializeHook produces the custom payload for a user-defined block or
// compression codec. It receives the codec and returns the payload plus true,
// or false when it does not recognize the codec.
type SerializeHook func(codec any) ([]string, bool)

// DeserializeHook reconstructs a user-defined block or compression codec from
// its persisted kind name and custom payload. It returns an
// encoding.BlockCodec or encoding.CompressionCodec plus true, or false when
// it does not recognize the kind. The deserializer consults it only after the
// built-in kinds fail to match.
type DeserializeHook func(kind string, custom []string) (any, bool)

// Naming convention: kind names persist as short names (Numeric, Bytes,
// String, IFrameOnly, NumericDelta); type parameters persist as full
// primitive/encoding names (uint8, float64, UTF16LE, ...). The asymmetry is
// load-bearing for reading schemas written by the format's origin.

type schemaJSON struct {
	StreamCompression *streamCompressionJSON `json:"stream_compression,omitempty"`
	CustomHeader      *customHeaderJSON      `json:"custom_header,omitempty"`
	Blocks            []blockJSON            `json:"blocks"`
	Version           byte                   `json:"version"`
}

type streamCompressionJSON struct {
	IFrameInterval int `json:"i_frame_interval"`
}

type customHeaderJSON struct {
	Info       []int `json:"info"`
	ByteLength int   `json:"byte_length"`
}

type blockJSON struct {
	Type              string   `json:"type"`
	PropertyName      string   `json:"property_name"`
	Compression       string   `json:"compression"`
	Custom            []string `json:"custom"`
	CompressionCustom []string `json:"compression_custom"`
	Index             int      `json:"index"`
}

// blockCustom returns the custom payload of a built-in or func block codec.
func blockCustom(c encoding.BlockCodec) ([]string, bool) {
	switch codec := c.(type) {
	case encoding.NumericCodec:
		return []string{codec.Primitive().String()}, true
	case encoding.BytesCodec:
		return []string{}, true
	case encoding.StringCodec:
		return []string{codec.Encoding().String()}, true
	case *encoding.FuncBlockCodec:
		return codec.CustomInfo(), true
	default:
		return nil, false
	}
}

// compressionCustom returns the custom payload of a built-in or func
// compression codec.
func compressionCustom(c encoding.CompressionCodec) ([]string, bool) {
	switch codec := c.(type) {
	case encoding.IFrameOnlyCodec:
		return []string{}, true
	case encoding.NumericDeltaCodec:
		orig, delta := codec.Primitives()
		return []string{orig.String(), delta.String()}, true
	case *encoding.FuncCompressionCodec:
		return codec.CustomInfo(), true
	default:
		return nil, false
	}
}

// MarshalJSONWith serializes the schema, consulting hook for block or
// compression codecs it cannot serialize itself.
//
// Returns:
//   - []byte: The JSON document
//   - error: When a codec is neither built-in nor claimed by the hook
func (s *Schema) MarshalJSONWith(hook SerializeHook) ([]byte, error) {
	doc := schemaJSON{
		Version: s.version,
		Blocks:  make([]blockJSON, len(s.blocks)),
	}

	if s.stream != nil {
		doc.StreamCompression = &streamCompressionJSON{IFrameInterval: s.stream.IFrameInterval}
	}

	if s.header != nil {
		info := make([]int, len(s.header.Info))
		for i, b := range s.header.Info {
			info[i] = int(b)
		}
		doc.CustomHeader = &customHeaderJSON{ByteLength: len(s.header.Info), Info: info}
	}

	for i, b := range s.blocks {
		custom, ok := blockCustom(b.Codec)
		if !ok && hook != nil {
			custom, ok = hook(b.Codec)
		}
		if !ok {
			return nil, fmt.Errorf("%w: cannot serialize block kind %q",
				errs.ErrUnknownBlockKind, b.Codec.KindName())
		}

		bj := blockJSON{
			Type:              b.Codec.KindName(),
			Index:             b.Index,
			PropertyName:      b.Property,
			Custom:            custom,
			CompressionCustom: []string{},
		}

		if b.Compression != nil {
			cc, ok := compressionCustom(b.Compression)
			if !ok && hook != nil {
				cc, ok = hook(b.Compression)
			}
			if !ok {
				return nil, fmt.Errorf("%w: cannot serialize compression kind %q",
					errs.ErrUnknownCompressionKind, b.Compression.KindName())
			}

			bj.Compression = b.Compression.KindName()
			bj.CompressionCustom = cc
		}

		doc.Blocks[i] = bj
	}

	return json.Marshal(doc)
}

// ToJSON serializes a schema built from built-in kinds only.
func (s *Schema) ToJSON() (string, error) {
	b, err := s.MarshalJSONWith(nil)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// FromJSON reconstructs a schema from its persisted JSON form, consulting
// hook for kinds the built-in set does not cover. hook may be nil.
//
// Returns:
//   - *Schema: The reconstructed schema, revalidated by New
//   - error: ErrMalformedJSON, ErrUnknownBlockKind, ErrUnknownCompressionKind,
//     or a validation failure
func FromJSON(text string, hook DeserializeHook) (*Schema, error) {
	var doc schemaJSON
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrMalformedJSON, err)
	}

	blocks := make([]Block, len(doc.Blocks))
	for i, bj := range doc.Blocks {
		codec, err := resolveBlockCodec(bj, hook)
		if err != nil {
			return nil, err
		}

		var comp encoding.CompressionCodec
		if bj.Compression != "" {
			comp, err = resolveCompressionCodec(bj, hook)
			if err != nil {
				return nil, err
			}
		}

		blocks[i] = Block{
			Index:       bj.Index,
			Property:    bj.PropertyName,
			Codec:       codec,
			Compression: comp,
		}
	}

	var opts []Option
	if doc.StreamCompression != nil {
		opts = append(opts, WithStreamCompression(doc.StreamCompression.IFrameInterval))
	}

	if doc.CustomHeader != nil {
		if len(doc.CustomHeader.Info) != doc.CustomHeader.ByteLength {
			return nil, fmt.Errorf("%w: custom header declares %d bytes, carries %d",
				errs.ErrMalformedJSON, doc.CustomHeader.ByteLength, len(doc.CustomHeader.Info))
		}

		info := make([]byte, len(doc.CustomHeader.Info))
		for j, n := range doc.CustomHeader.Info {
			if n < 0 || n > 0xFF {
				return nil, fmt.Errorf("%w: custom header byte %d out of range", errs.ErrMalformedJSON, n)
			}
			info[j] = byte(n)
		}
		opts = append(opts, WithCustomHeader(info))
	}

	return New(doc.Version, blocks, opts...)
}

func resolveBlockCodec(bj blockJSON, hook DeserializeHook) (encoding.BlockCodec, error) {
	codec, err := encoding.NewBlockCodec(bj.Type, bj.Custom)
	if err == nil {
		return codec, nil
	}

	if !errors.Is(err, errs.ErrUnknownBlockKind) || hook == nil {
		return nil, err
	}

	obj, ok := hook(bj.Type, bj.Custom)
	if !ok {
		return nil, err
	}

	codec, ok = obj.(encoding.BlockCodec)
	if !ok {
		return nil, fmt.Errorf("%w: hook returned %T for block kind %q",
			errs.ErrUnknownBlockKind, obj, bj.Type)
	}

	return codec, nil
}

func resolveCompressionCodec(bj blockJSON, hook DeserializeHook) (encoding.CompressionCodec, error) {
	codec, err := encoding.NewCompressionCodec(bj.Compression, bj.CompressionCustom)
	if err == nil {
		return codec, nil
	}

	if !errors.Is(err, errs.ErrUnknownCompressionKind) || hook == nil {
		return nil, err
	}

	obj, ok := hook(bj.Compression, bj.CompressionCustom)
	if !ok {
		return nil, err
	}

	codec, ok = obj.(encoding.CompressionCodec)
	if !ok {
		return nil, fmt.Errorf("%w: hook returned %T for compression kind %q",
			errs.ErrUnknownCompressionKind, obj, bj.Compression)
	}

	return codec, nil
}
