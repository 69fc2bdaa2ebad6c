package dataset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/radar/internal/domain/model"
)

// decodeYAML expects a top-level sequence of record mappings.
func decodeYAML(r io.Reader) ([]rawRow, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	seq := &doc
	if seq.Kind == yaml.DocumentNode && len(seq.Content) > 0 {
		seq = seq.Content[0]
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a sequence of records at line %d", ErrDecode, seq.Line)
	}

	rows := make([]rawRow, len(seq.Content))
	for i, item := range seq.Content {
		var raw model.RawRecord
		if err := item.Decode(&raw); err != nil {
			rows[i] = rawRow{err: yamlInputError(err)}
			continue
		}
		rows[i] = rawRow{raw: raw}
	}
	return rows, nil
}

func yamlInputError(err error) error {
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		return model.NewInvalidInput(0, "record", strings.Join(te.Errors, "; "))
	}
	return model.NewInvalidInput(0, "record", err.Error())
}

func encodeYAML(w io.Writer, records []model.MetricRecord) error {
	if records == nil {
		records = []model.MetricRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}
