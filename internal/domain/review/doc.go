// Package review holds the client-side review session for one batch of
// generated flashcard candidates: per-candidate status, edits, save
// selection and the outcome of saving.
package review
