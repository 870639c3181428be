package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"business-analysis/internal/model"
)

// recordsDocument is the JSON envelope for a record series.
type recordsDocument struct {
	Records []map[string]any `json:"records"`
}

func LoadRecordsJSON(path string) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecordsJSON(f)
}

// ReadRecordsJSON accepts either {"records": [...]} or a bare array of record objects.
// Null and missing numbers are explicitly absent (NaN).
func ReadRecordsJSON(r io.Reader) (model.Series, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rows []map[string]any
	if len(raw) > 0 && raw[0] == '[' {
		if err := dec.Decode(&rows); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
	} else {
		var doc recordsDocument
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		rows = doc.Records
	}
	return RecordsFromMaps(rows)
}

// RecordsFromMaps converts decoded JSON objects into a series. Keys are matched like CSV
// headers; unknown keys are ignored.
func RecordsFromMaps(rows []map[string]any) (model.Series, error) {
	out := make(model.Series, 0, len(rows))
	for i, row := range rows {
		rec := emptyRecord()
		keys := make([]string, 0, len(row))
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			raw := row[key]
			name := normalizeColumn(key)
			if name == periodColumn {
				if raw != nil {
					rec.Period = fmt.Sprint(raw)
				}
				continue
			}
			f := model.Field(name)
			if _, known := rec.Value(f); !known {
				continue
			}
			v, err := numberFrom(raw)
			if err != nil {
				return nil, &model.InvalidRecordError{Row: i + 1, Field: name, Value: fmt.Sprint(raw)}
			}
			rec.Set(f, v)
		}
		if rec.Period == "" {
			rec.Period = strconv.Itoa(i + 1)
		}
		out = append(out, rec)
	}
	return out, nil
}

func numberFrom(raw any) (float64, error) {
	switch v := raw.(type) {
	case nil:
		return math.NaN(), nil
	case json.Number:
		return v.Float64()
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		return parseCell(v)
	default:
		return 0, fmt.Errorf("unsupported value %T", raw)
	}
}

// emptyRecord returns a record whose numeric fields are all explicitly absent.
func emptyRecord() model.PeriodRecord {
	var rec model.PeriodRecord
	for _, f := range model.Fields {
		rec.Set(f, math.NaN())
	}
	return rec
}

// parseCell parses a numeric cell. Blank cells are absent; thousands separators are allowed.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
