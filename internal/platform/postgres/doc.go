// Package postgres provides PostgreSQL implementations of the store
// interfaces using the pgx driver through database/sql. The progress
// store pushes the read-modify-write of a review into a single
// transaction holding a row lock, so concurrent reviews of the same
// (user, card) pair serialize at the database.
package postgres
