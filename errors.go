package goldfees

import (
	"fmt"
	"strings"
)

// The loaders fail fast: any of the errors below aborts the whole run, there
// is no partial or degraded output mode.

// SchemaError reports required columns missing from an input file header.
type SchemaError struct {
	Missing []string // the missing column names
	Columns []string // the columns actually found
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns {%s} in input, found {%s}",
		strings.Join(e.Missing, ", "), strings.Join(e.Columns, ", "))
}

// ParseError reports a malformed date or numeric literal, echoing the
// offending value.
type ParseError struct {
	Field   string // column the literal came from
	Literal string // the offending literal
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s %q: %v", e.Field, e.Literal, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError reports that no gross proceeds dataset exists for the
// requested symbol and tax year.
type NotFoundError struct {
	Symbol  string
	TaxYear int // 0 when the dataset is not year-scoped
	Path    string
}

func (e *NotFoundError) Error() string {
	if e.TaxYear == 0 {
		return fmt.Sprintf("no gross proceeds dataset for symbol %q (looked for %s)", e.Symbol, e.Path)
	}
	return fmt.Sprintf("no gross proceeds dataset for symbol %q tax year %d (looked for %s)", e.Symbol, e.TaxYear, e.Path)
}
