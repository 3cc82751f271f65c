// Package service holds the application services behind the HTTP API:
// generating flashcard candidates from source text, persisting reviewed
// flashcards with their acceptance statistics, and user registration/login.
package service
