// Package store persists ledger states in SQLite.
//
// Every batch that asks for it writes one run: a UUIDv7 run id plus complete
// copies of the customer, supplier, product and order registries and the
// next order id. Runs are never updated after they are written.
//
// # Ordering
//
// Each entity row carries a pos column recording its registry position.
// All reads use ORDER BY pos ASC, so a loaded state iterates exactly as the
// ledger that wrote it. Runs are ordered by their seq column, assigned on
// insert.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
