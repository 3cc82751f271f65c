// Package postgres provides PostgreSQL implementations of the store
// interfaces, using the pgx database/sql driver, together with the embedded
// goose migrations that create the schema they expect.
package postgres
