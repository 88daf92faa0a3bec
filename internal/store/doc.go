// Package store provides the database access abstractions shared by the
// persistence layer: the DBTX interface satisfied by both connections and
// transactions, common storage sentinels, and a transaction runner.
package store
