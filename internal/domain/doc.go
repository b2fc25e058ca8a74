// Package domain defines the matamazon entity types and the validation rules
// every entity passes through at construction time.
//
// Identifiers are non-negative integers and amounts are non-negative numbers.
// Boolean values are never accepted in either position, even where a loosely
// typed source would treat them as integers. Validation failures are reported
// as *ValidationError values wrapping one of the two error kinds:
//
//   - ErrInvalidIdentifier: bad, missing, duplicate or colliding identifiers
//     and any dependency rule that blocks a deletion
//   - ErrInvalidAmount: malformed prices, quantities or totals
//
// Each entity renders itself with String in the textual form used by the
// state and orders exports, e.g.
//
//	Product(id=10, name='Widget', price=2.5, supplier_id=1, quantity=3)
package domain
