// Package ledger implements the matamazon in-memory ledger.
//
// A System owns four registries (customers, suppliers, products, orders) and
// the order-id sequence. It is the only place where the integrity rules live:
//
// Shared contact namespace:
// Customer and supplier ids are drawn from one namespace. Registration checks
// both registries before inserting into either.
//
// Stock accounting:
// A product's quantity is what upserts set minus what live orders hold.
// Placing an order takes stock, removing the order gives it back.
//
// Referential integrity:
// Customers and products cannot be removed while an order references them.
// Suppliers cannot be removed while an order references one of their
// products.
//
// Atomicity:
// Every operation validates completely before its first mutation, so a
// rejected operation leaves the ledger unchanged.
//
// A System is driven by a single caller and is not safe for concurrent use.
// Registries iterate in insertion order, which fixes the order of every export.
package ledger
