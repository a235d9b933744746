// Package codec turns snapshots into bytes and back.
//
// Two encodings are available: JSON, readable and easy to inspect by hand,
// and CBOR in its core deterministic form, where the same value always
// yields the same bytes. Either one can be wrapped with zstd or lz4
// compression; the wrapper shows up in the codec name ("cbor+zstd").
package codec

import (
	"strings"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// Names of the available codecs
const (
	NameJSON = "json"
	NameCBOR = "cbor"
)

// Compression settings accepted by New
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
	CompressionLZ4  = "lz4"
)

// Codec encodes values to bytes and back
type Codec interface {
	// Name identifies the codec inside stored envelopes
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// New returns the codec called name wrapped with the given compression.
// An empty compression means none.
func New(name, compression string) (Codec, error) {
	var c Codec
	switch strings.ToLower(name) {
	case NameJSON:
		c = JSON{}
	case NameCBOR:
		c = CBOR{}
	default:
		return nil, errors.InvalidArgumentf("unknown codec %q", name).
			WithMeta("allowed", []string{NameJSON, NameCBOR})
	}

	switch strings.ToLower(compression) {
	case "", CompressionNone:
		return c, nil
	case CompressionZstd:
		return Compressed(c), nil
	case CompressionLZ4:
		return LZ4(c), nil
	default:
		return nil, errors.InvalidArgumentf("unknown compression %q", compression).
			WithMeta("allowed", []string{CompressionNone, CompressionZstd, CompressionLZ4})
	}
}

// Lookup resolves a name produced by Codec.Name, including compressed ones
func Lookup(name string) (Codec, error) {
	base, compression, _ := strings.Cut(name, "+")
	if compression == "" {
		compression = CompressionNone
	}
	return New(base, compression)
}

// unwrap strips any compression wrapper from c
func unwrap(c Codec) Codec {
	switch w := c.(type) {
	case zstdCodec:
		return w.inner
	case lz4Codec:
		return w.inner
	default:
		return c
	}
}
