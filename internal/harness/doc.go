// Package harness runs ledger scenarios described in YAML and compares
// their results with expectations and golden files.
//
// # Scenario Format
//
//	name: place_order
//	description: "Placing an order decrements stock"
//	snapshot: |
//	  Supplier(1, 'Acme', 'NYC', '5th Ave')
//	  Product(10, 'Widget', 2.5, 1, 3)
//	commands:
//	  - order 7 10 2
//	  - search Widget
//	expect:
//	  output: |
//	    [Product(id=10, name='Widget', price=2.5, supplier_id=1, quantity=1)]
//	  orders: '{"NYC": ["Order(id=1, customer_id=7, product_id=10, quantity=2, total_price=5.0)"]}'
//	assertions:
//	  - type: product
//	    id: 10
//	    expect: { quantity: 1 }
//	  - type: next_order_id
//	    value: 2
//
// The snapshot is object-literal text; snapshot_file names a snapshot file
// (text or .cue) relative to the scenario instead. Commands use the command
// log syntax.
//
// # Expectations
//
//   - output: exact text the commands printed (search results)
//   - orders: exact orders export
//   - error: kind of the error that stopped the scenario
//     (invalid_identifier, invalid_amount, malformed, argument); absent
//     means the scenario must succeed
//
// # Assertion Types
//
//   - product: product id exists and its fields match (subset)
//   - present / absent: an object of class (customer, supplier, product,
//     order) with id does or does not exist
//   - order_count: number of live orders
//   - next_order_id: id the next placed order gets
//
// Every scenario runs on a fresh ledger with logging discarded.
package harness
