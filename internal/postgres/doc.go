// Package postgres implements the repository contracts from the domain
// package on top of a pgx connection pool, and owns the embedded schema
// migrations.
package postgres
