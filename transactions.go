package goldfees

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/etnz/goldfees/date"
)

// Instruction is the side of a transaction.
type Instruction string

const (
	Buy  Instruction = "BUY"
	Sell Instruction = "SELL"
)

// ParseInstruction parses an instruction literal. Values are case-sensitive,
// exactly as brokers export them.
func ParseInstruction(s string) (Instruction, error) {
	switch Instruction(s) {
	case Buy, Sell:
		return Instruction(s), nil
	default:
		return "", fmt.Errorf("want %q or %q", Buy, Sell)
	}
}

// Transaction is a single investor buy or sell, normalized from the input
// CSV. Transactions are immutable once loaded.
type Transaction struct {
	Date        date.Date
	Instruction Instruction
	Quantity    Quantity // always > 0, the Instruction carries the sign
	Price       Money    // per-share price at transaction time
}

// SignedQuantity returns the position delta of the transaction: positive for
// a buy, negative for a sell.
func (t Transaction) SignedQuantity() Quantity {
	if t.Instruction == Sell {
		return t.Quantity.Neg()
	}
	return t.Quantity
}

// Cost returns the signed cost basis delta of the transaction
// (signed quantity times price).
func (t Transaction) Cost() Money {
	return t.Price.Mul(t.SignedQuantity())
}

// transactionColumns are the required columns of the transactions CSV.
// A "price" column is optional: when absent every price is zero.
var transactionColumns = []string{"date", "instruction", "quantity"}

// ReadTransactions parses a transactions CSV into a date-ascending sequence.
// Same-date transactions keep their input order (stable sort).
//
// The input must have a header row with at least the transactionColumns, or a
// SchemaError is returned. Any malformed date or numeric literal returns a
// ParseError; there is no partial result.
func ReadTransactions(r io.Reader) ([]Transaction, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("transactions CSV is empty, want a header row")
	}

	index, err := headerIndex(records[0], transactionColumns)
	if err != nil {
		return nil, err
	}
	priceCol, hasPrice := index["price"]

	txs := make([]Transaction, 0, len(records)-1)
	for _, record := range records[1:] {
		var tx Transaction

		if tx.Date, err = date.Parse(record[index["date"]]); err != nil {
			return nil, &ParseError{Field: "date", Literal: record[index["date"]], Err: err}
		}
		if tx.Instruction, err = ParseInstruction(record[index["instruction"]]); err != nil {
			return nil, &ParseError{Field: "instruction", Literal: record[index["instruction"]], Err: err}
		}
		if tx.Quantity, err = ParseQuantity(record[index["quantity"]]); err != nil {
			return nil, &ParseError{Field: "quantity", Literal: record[index["quantity"]], Err: err}
		}
		if hasPrice {
			if tx.Price, err = ParseMoney(record[priceCol]); err != nil {
				return nil, &ParseError{Field: "price", Literal: record[priceCol], Err: err}
			}
		}
		txs = append(txs, tx)
	}

	slices.SortStableFunc(txs, func(a, b Transaction) int { return a.Date.Compare(b.Date) })
	return txs, nil
}

// ApplySplit returns a copy of txs rescaled by the split ratio: quantities
// are multiplied and prices divided by it, which restates pre-split history
// in current share terms. Running basis is unchanged by construction.
// The ratio must be positive, prices are divided by it.
func ApplySplit(txs []Transaction, ratio Quantity) []Transaction {
	adjusted := make([]Transaction, len(txs))
	for i, tx := range txs {
		tx.Quantity = tx.Quantity.Mul(ratio)
		tx.Price = tx.Price.Div(ratio)
		adjusted[i] = tx
	}
	return adjusted
}

// LoadTransactions reads and normalizes the transactions file, applying the
// split adjustment if one is given. A non-positive split ratio is rejected.
func LoadTransactions(filename string, split *Quantity) ([]Transaction, error) {
	if split != nil && !split.IsPositive() {
		return nil, fmt.Errorf("split ratio must be positive, got %s", split)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open transactions file: %w", err)
	}
	defer f.Close()

	txs, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading transactions %q: %w", filename, err)
	}
	if split != nil {
		txs = ApplySplit(txs, *split)
	}
	return txs, nil
}

// headerIndex maps column names to their position in the header, and checks
// that all required columns are present.
func headerIndex(header, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing, Columns: header}
	}
	return index, nil
}
