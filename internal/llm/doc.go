// Package llm is the language model adapter for flashcard generation.
//
// A Client validates the user message, sends it through a provider-specific
// Transport, retries transport-level failures with exponential backoff and
// parses the reply against a strict {flashcards:[{front,back}]} schema.
// Providers live under internal/platform (openrouter, gemini).
package llm
