// Package postgres implements the task store on PostgreSQL for durable
// deployments. Lifecycle transitions run inside row-locking transactions so
// the single-writer-per-key guarantee holds across processes.
package postgres
