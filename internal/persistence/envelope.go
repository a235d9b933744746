package persistence

import (
	"bytes"
	"time"

	"github.com/zeebo/blake3"

	"github.com/KirkDiggler/rpg-inventory/internal/codec"
	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// EnvelopeVersion is written into every envelope; Load rejects other versions
const EnvelopeVersion = 1

// checksumKey separates save checksums from any other blake3 use.
// Changing it invalidates every stored save.
var checksumKey = [32]byte{
	'r', 'p', 'g', '-', 'i', 'n', 'v', 'e', 'n', 't', 'o', 'r', 'y', '.',
	's', 'a', 'v', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// envelope wraps an encoded snapshot with what is needed to decode and
// verify it. It is always written as CBOR; the payload uses Codec.
type envelope struct {
	Version  int       `cbor:"1,keyasint"`
	Codec    string    `cbor:"2,keyasint"`
	SavedAt  time.Time `cbor:"3,keyasint"`
	Checksum []byte    `cbor:"4,keyasint"`
	Payload  []byte    `cbor:"5,keyasint"`
}

func checksum(payload []byte) []byte {
	hasher, err := blake3.NewKeyed(checksumKey[:])
	if err != nil {
		panic("persistence: blake3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(payload)
	return hasher.Sum(nil)
}

func sealEnvelope(c codec.Codec, payload []byte, savedAt time.Time) ([]byte, error) {
	return codec.CBOR{}.Marshal(envelope{
		Version:  EnvelopeVersion,
		Codec:    c.Name(),
		SavedAt:  savedAt.UTC(),
		Checksum: checksum(payload),
		Payload:  payload,
	})
}

// openEnvelope decodes and verifies data, returning the envelope and the
// codec its payload was written with. Every failure is DataLoss.
func openEnvelope(data []byte) (*envelope, codec.Codec, error) {
	var env envelope
	if err := (codec.CBOR{}).Unmarshal(data, &env); err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeDataLoss, "save envelope is malformed")
	}

	if env.Version != EnvelopeVersion {
		return nil, nil, errors.DataLossf("unsupported save version %d", env.Version).
			WithMeta("version", env.Version)
	}

	payloadCodec, err := codec.Lookup(env.Codec)
	if err != nil {
		return nil, nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "save written with unknown codec %q", env.Codec)
	}

	if !bytes.Equal(checksum(env.Payload), env.Checksum) {
		return nil, nil, errors.DataLoss("save checksum mismatch")
	}

	return &env, payloadCodec, nil
}
