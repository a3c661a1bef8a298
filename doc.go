// Package goldfees computes the deductible investment expenses of a
// commodity-trust ETF shareholder (e.g. GLD).
//
// Such trusts periodically sell a small amount of the metal they hold to pay
// the sponsor's fee. For tax purposes each shareholder is deemed to have sold
// their proportional share of those ounces, and must report both the proceeds
// and the cost basis consumed. The sponsor publishes a per-date reference
// table (ounces per share, ounces sold to cover expenses, proceeds per
// share); the shareholder supplies their own transaction history.
//
// The package reconciles the two: it folds a running position (signed share
// count and cost basis) over the merged date order of both sources, and on
// each expense event allocates a proportional slice of the running basis.
//
// The core functionalities include:
//   - Transaction Loading: parsing a broker CSV of BUY/SELL records into a
//     normalized, date-sorted history, optionally rescaled for share splits.
//   - Reference Loading: locating and parsing the sponsor's gross proceeds
//     dataset for one symbol and tax year.
//   - Reconciliation: the outer join and running fold producing one report
//     row per expense event, with exact decimal arithmetic throughout and
//     banker's rounding applied only to the two final monetary columns.
//
// This package serves as the foundational logic for the `goldfees`
// command-line tool.
package goldfees
