// Package domain contains the core business entities, value objects, and
// domain logic of the application: generations, flashcards, their provenance
// tags, generation error logs and users. It is independent of any storage or
// delivery mechanism.
package domain
