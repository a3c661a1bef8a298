package goldfees

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/etnz/goldfees/date"
)

// GrossProceeds is one row of the sponsor's published reference table: the
// trust's backing ratio on a date, and the per-share ounces and proceeds of
// any liquidation made that date to cover trust expenses.
//
// The three numeric fields are each optional per row. A nil pointer means the
// sponsor published nothing (the row carries no such event); an explicit zero
// is a published value that merely contributes nothing numerically. The two
// are not interchangeable: only non-nil OuncesSoldToCoverExpenses rows count
// as expense events.
type GrossProceeds struct {
	Date                      date.Date
	OuncesPerShare            *Quantity
	OuncesSoldToCoverExpenses *Quantity
	ProceedsPerShare          *Money
}

// grossProceedsColumns are the required columns of a gross proceeds dataset.
// These files are pre-supplied per symbol and tax year; a malformed one is
// fatal, not repaired.
var grossProceedsColumns = []string{
	"date",
	"ounces_per_share",
	"per_share_ounces_sold_to_cover_expenses",
	"proceeds_per_share",
}

// ReadGrossProceeds parses a gross proceeds dataset into a date-ascending
// sequence.
func ReadGrossProceeds(r io.Reader) ([]GrossProceeds, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed gross proceeds CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("gross proceeds CSV is empty, want a header row")
	}

	index, err := headerIndex(records[0], grossProceedsColumns)
	if err != nil {
		return nil, err
	}

	refs := make([]GrossProceeds, 0, len(records)-1)
	for _, record := range records[1:] {
		var ref GrossProceeds

		if ref.Date, err = date.Parse(record[index["date"]]); err != nil {
			return nil, &ParseError{Field: "date", Literal: record[index["date"]], Err: err}
		}
		if ref.OuncesPerShare, err = optionalQuantity("ounces_per_share", record[index["ounces_per_share"]]); err != nil {
			return nil, err
		}
		if ref.OuncesSoldToCoverExpenses, err = optionalQuantity("per_share_ounces_sold_to_cover_expenses", record[index["per_share_ounces_sold_to_cover_expenses"]]); err != nil {
			return nil, err
		}
		if ref.ProceedsPerShare, err = optionalMoney("proceeds_per_share", record[index["proceeds_per_share"]]); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	slices.SortStableFunc(refs, func(a, b GrossProceeds) int { return a.Date.Compare(b.Date) })
	return refs, nil
}

// optionalQuantity parses an empty cell to nil, never to zero.
func optionalQuantity(field, s string) (*Quantity, error) {
	if s == "" {
		return nil, nil
	}
	q, err := ParseQuantity(s)
	if err != nil {
		return nil, &ParseError{Field: field, Literal: s, Err: err}
	}
	return &q, nil
}

func optionalMoney(field, s string) (*Money, error) {
	if s == "" {
		return nil, nil
	}
	m, err := ParseMoney(s)
	if err != nil {
		return nil, &ParseError{Field: field, Literal: s, Err: err}
	}
	return &m, nil
}

// GrossProceedsPath returns the conventional location of the dataset for a
// symbol: gross_proceeds/<taxYear>/gross-proceeds-<symbol>.csv under dir, or
// directly under gross_proceeds/ when taxYear is zero.
func GrossProceedsPath(dir, symbol string, taxYear int) string {
	name := fmt.Sprintf("gross-proceeds-%s.csv", symbol)
	if taxYear == 0 {
		return filepath.Join(dir, name)
	}
	return filepath.Join(dir, fmt.Sprintf("%d", taxYear), name)
}

// FindGrossProceeds locates the dataset for the symbol and tax year, and
// returns a NotFoundError if none is supplied.
func FindGrossProceeds(dir, symbol string, taxYear int) (string, error) {
	path := GrossProceedsPath(dir, symbol, taxYear)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Symbol: symbol, TaxYear: taxYear, Path: path}
		}
		return "", fmt.Errorf("cannot access gross proceeds dataset %q: %w", path, err)
	}
	return path, nil
}

// LoadGrossProceeds locates, reads and normalizes the reference dataset for
// one symbol and tax year.
func LoadGrossProceeds(dir, symbol string, taxYear int) ([]GrossProceeds, error) {
	path, err := FindGrossProceeds(dir, symbol, taxYear)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open gross proceeds dataset: %w", err)
	}
	defer f.Close()

	refs, err := ReadGrossProceeds(f)
	if err != nil {
		return nil, fmt.Errorf("reading gross proceeds %q: %w", path, err)
	}
	return refs, nil
}
