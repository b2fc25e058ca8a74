// Package snapshot bootstraps a ledger from a prior snapshot.
//
// Three sources are understood, chosen by file extension in LoadFile:
//
//   - object-literal text (default): one constructor expression per line,
//     e.g. Product(10, 'Widget', 2.5, 1, 3) or Customer(id=1, name='Dana',
//     city='Haifa', address='Herzl 1')
//   - .cue documents with top-level customers, suppliers and products lists
//   - .db / .sqlite files written by internal/store (latest run)
//
// The object-literal grammar is deliberately tiny: a known type name, then
// positional or keyword arguments whose values are integer, float, string,
// True, False or None literals with optional unary signs. Nothing is
// evaluated.
//
// Error policy for text snapshots:
//
//   - blank lines, syntax errors, and unknown names are skipped
//   - argument mismatches (missing, surplus or unknown keywords) abort the load
//   - validation failures of a well-formed line abort the load
//
// Parsed entities are applied customers first, then suppliers, then
// products, each group in file order. Order lines are validated and then
// discarded.
package snapshot
