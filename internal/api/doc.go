// Package api implements the HTTP handlers for generating flashcards, saving
// reviewed flashcards and authenticating users. Handlers decode and validate
// requests, call the services and map service errors to status codes with
// messages that are safe to show to clients.
package api
