// Package store defines interfaces for data persistence operations on users,
// generations, flashcards and generation error logs. Implementations live in
// internal/platform/postgres; services depend only on these interfaces.
package store
