package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/okian/radar/internal/domain/model"
)

// decodeJSON expects a top-level array of record objects. Each element is
// decoded on its own so a non-numeric value only rejects its row.
func decodeJSON(r io.Reader) ([]rawRow, error) {
	var elems []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	rows := make([]rawRow, len(elems))
	for i, el := range elems {
		var raw model.RawRecord
		if err := json.Unmarshal(el, &raw); err != nil {
			rows[i] = rawRow{err: jsonInputError(err)}
			continue
		}
		rows[i] = rawRow{raw: raw}
	}
	return rows, nil
}

func jsonInputError(err error) error {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return model.NewInvalidInput(0, te.Field, "expected "+te.Type.String()+", got "+te.Value)
	}
	return model.NewInvalidInput(0, "record", err.Error())
}

func encodeJSON(w io.Writer, records []model.MetricRecord) error {
	if records == nil {
		records = []model.MetricRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
