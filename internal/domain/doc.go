// Package domain defines the core business entities of the spaced
// repetition engine: cards and decks as read-only study material, and
// the per-(user, card) progress record that carries all scheduling
// state. Entities validate themselves; persistence and scheduling live
// in the store and srs packages respectively.
package domain
