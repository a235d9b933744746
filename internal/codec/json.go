package codec

import (
	"encoding/json"

	"github.com/KirkDiggler/rpg-inventory/internal/errors"
)

// JSON encodes with encoding/json
type JSON struct{}

// Name returns "json"
func (JSON) Name() string {
	return NameJSON
}

// Marshal encodes v as JSON
func (JSON) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to encode json")
	}
	return data, nil
}

// Unmarshal decodes JSON data into v. Malformed input is reported as DataLoss.
func (JSON) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode json")
	}
	return nil
}
