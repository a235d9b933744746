package codec

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// encMode uses core deterministic encoding: sorted map keys, smallest
// integer forms and no indefinite lengths.
var encMode cbor.EncMode

// decMode rejects duplicate map keys and ignores unknown fields
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: cbor encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("codec: cbor decoder initialization failed: " + err.Error())
	}
}

// CBOR encodes with fxamacker/cbor. Struct fields without a cbor tag use
// their json tag.
type CBOR struct{}

// Name returns "cbor"
func (CBOR) Name() string {
	return NameCBOR
}

// Marshal encodes v as deterministic CBOR
func (CBOR) Marshal(v any) ([]byte, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to encode cbor")
	}
	return data, nil
}

// Unmarshal decodes CBOR data into v. Malformed input is reported as DataLoss.
func (CBOR) Unmarshal(data []byte, v any) error {
	if err := decMode.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode cbor")
	}
	return nil
}
