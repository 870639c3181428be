package model

import "fmt"

// InsufficientDataError is returned when a computation structurally needs more history
// than the series holds.
type InsufficientDataError struct {
	Op   string
	Need int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: need at least %d periods, have %d", e.Op, e.Need, e.Have)
}

// MissingMetricError is returned when a component reads a snapshot key that was never computed.
type MissingMetricError struct {
	Category string
	Name     string
}

func (e *MissingMetricError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("unknown metric %q", e.Name)
	}
	return fmt.Sprintf("missing metric %s.%s", e.Category, e.Name)
}

// InvalidRecordError reports a record field that is not numeric.
// Row is 1-based and counts data rows only.
type InvalidRecordError struct {
	Row   int
	Field string
	Value string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("record %d: field %q: value %q is not numeric", e.Row, e.Field, e.Value)
}
