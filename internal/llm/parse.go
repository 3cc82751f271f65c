package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/tenx-cards/internal/domain"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Card is one flashcard proposed by the model.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ParseResult is either a list of cards or the reason the reply was rejected.
type ParseResult struct {
	Cards  []Card
	Reason string
}

// OK reports whether the reply matched the schema.
func (r ParseResult) OK() bool {
	return r.Reason == ""
}

func failed(format string, args ...any) ParseResult {
	return ParseResult{Reason: fmt.Sprintf(format, args...)}
}

// ParseFlashcards checks content against FlashcardsSchema and decodes it.
// Unknown fields, missing fields, wrong types, trailing data and sides outside
// the stored flashcard bounds are all rejected.
func ParseFlashcards(content string) ParseResult {
	raw := []byte(strings.TrimSpace(content))
	if len(raw) == 0 {
		return failed("empty response content")
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return failed("response is not valid JSON: %v", err)
	}
	if !jsonschema.Validate(FlashcardsSchema, generic) {
		return failed("response does not match the flashcards schema")
	}

	var payload struct {
		Flashcards []Card `json:"flashcards"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return failed("response does not match the flashcards schema: %v", err)
	}
	if dec.More() {
		return failed("unexpected data after the flashcards object")
	}
	if payload.Flashcards == nil {
		return failed("flashcards must be an array")
	}

	cards := make([]Card, 0, len(payload.Flashcards))
	for i, c := range payload.Flashcards {
		front, back := strings.TrimSpace(c.Front), strings.TrimSpace(c.Back)
		if err := domain.ValidateFront(front); err != nil {
			return failed("flashcard %d: %v", i, err)
		}
		if err := domain.ValidateBack(back); err != nil {
			return failed("flashcard %d: %v", i, err)
		}
		cards = append(cards, Card{Front: front, Back: back})
	}
	return ParseResult{Cards: cards}
}
