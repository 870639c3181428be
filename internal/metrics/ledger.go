package metrics

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"business-analysis/internal/model"
)

// LedgerRow is the full ratio set for one period.
type LedgerRow struct {
	Index  int
	Period string
	Values map[Key]float64
}

// Ledger evaluates every ratio at every period of s.
func (c *Calculator) Ledger(s model.Series) []LedgerRow {
	rows := make([]LedgerRow, 0, len(s))
	for i, r := range s {
		vals := make(map[Key]float64, len(Keys))
		for _, k := range Keys {
			vals[k] = c.at(s, i, k)
		}
		rows = append(rows, LedgerRow{Index: i, Period: r.Period, Values: vals})
	}
	return rows
}

func WriteLedgerCSVFile(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteLedgerCSV(f, ledger)
}

// WriteLedgerCSV writes one row per period. Unassessable ratios are written as empty cells.
func WriteLedgerCSV(out io.Writer, ledger []LedgerRow) error {
	w := csv.NewWriter(out)

	header := []string{"index", "period"}
	for _, k := range Keys {
		header = append(header, k.Name)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{strconv.Itoa(r.Index), r.Period}
		for _, k := range Keys {
			row = append(row, fmtFloat(r.Values[k]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	if !Assessable(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}
