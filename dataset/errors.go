package dataset

import "fmt"

// MissingKeyError indicates a requested column name or row label that is
// not present in the table.
type MissingKeyError struct {
	Kind string // "column" or "row"
	Key  string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s %q not found in table", e.Kind, e.Key)
}

// IndexMismatchError indicates two tables whose row-index vocabularies do
// not line up, so a column-wise merge would pair unrelated rows.
type IndexMismatchError struct {
	Reason string
}

func (e *IndexMismatchError) Error() string {
	return fmt.Sprintf("row index mismatch: %s", e.Reason)
}

// DegenerateColumnError indicates a column whose values make the requested
// transform numerically meaningless, such as a zero or NaN mean under
// normalization.
type DegenerateColumnError struct {
	Column string
	Reason string
}

func (e *DegenerateColumnError) Error() string {
	return fmt.Sprintf("degenerate column %q: %s", e.Column, e.Reason)
}
