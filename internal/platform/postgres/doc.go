// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in the internal/store package, the embedded schema
// migrations, and the mapping of driver errors to store errors.
package postgres
