// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in the internal/store package.
package postgres
