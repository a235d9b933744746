package codec

import (
	"encoding/binary"

	"github.com/pierrec/lz4/v4"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// lz4 frames start with one of these, followed by the uvarint length of the
// uncompressed data and then the body
const (
	lz4Stored byte = 0
	lz4Block  byte = 1
)

type lz4Codec struct {
	inner Codec
}

// LZ4 wraps c so its output is lz4 block compressed. Payloads that do not
// shrink are stored as is. An existing compression wrapper on c is replaced.
func LZ4(c Codec) Codec {
	return lz4Codec{inner: unwrap(c)}
}

func (c lz4Codec) Name() string {
	return c.inner.Name() + "+" + CompressionLZ4
}

func (c lz4Codec) Marshal(v any) ([]byte, error) {
	data, err := c.inner.Marshal(v)
	if err != nil {
		return nil, err
	}

	header := make([]byte, 1, 1+binary.MaxVarintLen64)
	header = binary.AppendUvarint(header, uint64(len(data)))

	out := make([]byte, len(header)+lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, out[len(header):], nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to lz4 compress payload")
	}

	// CompressBlock reports 0 for incompressible input
	if written == 0 || written >= len(data) {
		header[0] = lz4Stored
		return append(header, data...), nil
	}

	header[0] = lz4Block
	copy(out, header)
	return out[:len(header)+written], nil
}

func (c lz4Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return errors.DataLoss("lz4 payload is empty")
	}

	size, n := binary.Uvarint(data[1:])
	if n <= 0 || size > maxDecodedSize {
		return errors.DataLoss("lz4 payload has a bad length header")
	}
	body := data[1+n:]

	switch data[0] {
	case lz4Stored:
		if uint64(len(body)) != size {
			return errors.DataLossf("stored payload holds %d bytes, header says %d", len(body), size)
		}
		return c.inner.Unmarshal(body, v)

	case lz4Block:
		raw := make([]byte, size)
		read, err := lz4.UncompressBlock(body, raw)
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to lz4 decompress payload")
		}
		if uint64(read) != size {
			return errors.DataLossf("lz4 payload expanded to %d bytes, header says %d", read, size)
		}
		return c.inner.Unmarshal(raw, v)

	default:
		return errors.DataLossf("unknown lz4 frame type %d", data[0])
	}
}
