package codec

import (
	"github.com/klauspost/compress/zstd"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// maxDecodedSize bounds the memory a single compressed payload may expand to
const maxDecodedSize = 64 << 20

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(maxDecodedSize),
	)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

type zstdCodec struct {
	inner Codec
}

// Compressed wraps c so its output is zstd compressed. An existing
// compression wrapper on c is replaced.
func Compressed(c Codec) Codec {
	return zstdCodec{inner: unwrap(c)}
}

func (c zstdCodec) Name() string {
	return c.inner.Name() + "+" + CompressionZstd
}

func (c zstdCodec) Marshal(v any) ([]byte, error) {
	data, err := c.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(data, nil), nil
}

func (c zstdCodec) Unmarshal(data []byte, v any) error {
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decompress payload")
	}
	return c.inner.Unmarshal(raw, v)
}
