// Package store defines the persistence ports the engine depends on:
// read-only access to decks and cards, and the keyed upsert/read store
// for per-(user, card) progress records. Implementations live under
// internal/platform; services depend only on these interfaces.
package store
