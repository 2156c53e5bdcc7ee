package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// Column describes one field of a TAP result set.
type Column struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

type tapResponse struct {
	Metadata []Column       `json:"metadata"`
	Data     json.RawMessage `json:"data"`
}

// ErrInvalidResponse is returned when a TAP body has no row array.
var ErrInvalidResponse = errors.New("invalid response structure from proxy API")

// Columns published under a different name by newer archive tables.
var columnAliases = map[string]string{
	"discoverymethod": "pl_discmethod",
	"disc_year":       "pl_disc",
}

// CellError records a cell whose value did not fit its typed field. The raw
// value is kept in the record's Extra map instead.
type CellError struct {
	Row    int
	Column string
	Value  any
	Err    error
}

// DecodeTAP converts a TAP JSON body into exoplanet records. Column i of
// every row is named by metadata[i]; null and empty-string cells are
// skipped so the corresponding field stays unset. Only a structurally
// invalid body is an error; see decodeTAP for cell-level failures.
func DecodeTAP(body []byte) ([]Exoplanet, error) {
	planets, _, err := decodeTAP(body)
	return planets, err
}

// decodeTAP is DecodeTAP that also reports the cells moved to Extra.
func decodeTAP(body []byte) ([]Exoplanet, []CellError, error) {
	var resp tapResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if len(bytes.TrimSpace(resp.Data)) == 0 || bytes.TrimSpace(resp.Data)[0] != '[' {
		return nil, nil, ErrInvalidResponse
	}

	dec := json.NewDecoder(bytes.NewReader(resp.Data))
	dec.UseNumber()
	var rows [][]any
	if err := dec.Decode(&rows); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	var bad []CellError
	planets := make([]Exoplanet, 0, len(rows))
	for i, row := range rows {
		p, cells := decodeRow(resp.Metadata, row)
		for _, c := range cells {
			c.Row = i
			bad = append(bad, c)
		}
		planets = append(planets, p)
	}
	return planets, bad, nil
}

func decodeRow(columns []Column, row []any) (Exoplanet, []CellError) {
	fields := make(map[string]any, len(columns))
	for i, col := range columns {
		if i >= len(row) {
			break
		}
		v := row[i]
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		name := col.Name
		if alias, ok := columnAliases[name]; ok {
			if _, taken := fields[alias]; !taken {
				name = alias
			}
		}
		fields[name] = v
	}

	p, err := decodeFields(fields)
	if err == nil {
		return p, nil
	}

	// Find the offending cells one by one, decode the rest and keep the
	// raw values in Extra.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var bad []CellError
	for _, k := range keys {
		if _, err := decodeFields(map[string]any{k: fields[k]}); err != nil {
			bad = append(bad, CellError{Column: k, Value: fields[k], Err: err})
			delete(fields, k)
		}
	}
	if p, err = decodeFields(fields); err != nil {
		p = Exoplanet{}
		p.Name, _ = fields["pl_name"].(string)
	}
	if len(bad) > 0 && p.Extra == nil {
		p.Extra = make(map[string]any, len(bad))
	}
	for _, c := range bad {
		p.Extra[c.Column] = c.Value
	}
	return p, bad
}

func decodeFields(fields map[string]any) (Exoplanet, error) {
	var p Exoplanet
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       integralNumberHook,
		Result:           &p,
	})
	if err != nil {
		return Exoplanet{}, err
	}
	if err := decoder.Decode(fields); err != nil {
		return Exoplanet{}, err
	}
	return p, nil
}

// integralNumberHook lets integer fields accept numbers written with a
// fractional part of zero, such as 1.0.
func integralNumberHook(from, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}
	if _, err := n.Int64(); err == nil {
		return data, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return data, nil
	}
	return int64(f), nil
}
