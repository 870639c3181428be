package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"business-analysis/internal/model"
)

const periodColumn = "period"

// columnAliases maps common alternative headers onto record fields.
var columnAliases = map[string]string{
	"date":            periodColumn,
	"month":           periodColumn,
	"assets":          string(model.FieldTotalAssets),
	"liabilities":     string(model.FieldDebt),
	"rd_spend":        string(model.FieldRDExpense),
	"r&d":             string(model.FieldRDExpense),
	"marketing_spend": string(model.FieldMarketingExpense),
	"cash_flow":       string(model.FieldOperatingCashFlow),
}

func normalizeColumn(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	if alias, ok := columnAliases[h]; ok {
		return alias
	}
	return h
}

func LoadRecordsCSV(path string) (model.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecordsCSV(f)
}

// ReadRecordsCSV reads a header-driven CSV of period records in chronological order.
// Blank cells are explicitly absent. A non-numeric cell fails with *model.InvalidRecordError.
func ReadRecordsCSV(in io.Reader) (model.Series, error) {
	r := csv.NewReader(in)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv: missing header")
		}
		return nil, err
	}

	cols := make([]string, len(header))
	hasRevenue := false
	for i, h := range header {
		cols[i] = normalizeColumn(h)
		if cols[i] == string(model.FieldRevenue) {
			hasRevenue = true
		}
	}
	if !hasRevenue {
		return nil, fmt.Errorf("csv: required column %q not found", model.FieldRevenue)
	}

	var out model.Series
	for row := 1; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row, err)
		}

		pr := emptyRecord()
		for i, cell := range rec {
			if i >= len(cols) {
				break
			}
			if cols[i] == periodColumn {
				pr.Period = strings.TrimSpace(cell)
				continue
			}
			f := model.Field(cols[i])
			if _, known := pr.Value(f); !known {
				continue
			}
			v, err := parseCell(cell)
			if err != nil {
				return nil, &model.InvalidRecordError{Row: row, Field: cols[i], Value: cell}
			}
			pr.Set(f, v)
		}
		if pr.Period == "" {
			pr.Period = strconv.Itoa(row)
		}
		out = append(out, pr)
	}
	return out, nil
}

// WriteRecordsCSV writes s with a header of period plus every record field.
func WriteRecordsCSV(out io.Writer, s model.Series) error {
	w := csv.NewWriter(out)

	header := []string{periodColumn}
	for _, f := range model.Fields {
		header = append(header, string(f))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range s {
		row := []string{r.Period}
		for _, f := range model.Fields {
			v, _ := r.Value(f)
			row = append(row, fmtCell(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LoadRecords picks the CSV or JSON reader from the file extension.
func LoadRecords(path string) (model.Series, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadRecordsJSON(path)
	}
	return LoadRecordsCSV(path)
}
