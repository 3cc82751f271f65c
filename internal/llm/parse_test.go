package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlashcards(t *testing.T) {
	ok := ParseFlashcards(`  {"flashcards":[{"front":" Q1 ","back":"A1"},{"front":"Q2","back":"A2"}]}  `)
	assert.True(t, ok.OK())
	assert.Equal(t, []Card{{Front: "Q1", Back: "A1"}, {Front: "Q2", Back: "A2"}}, ok.Cards)

	empty := ParseFlashcards(`{"flashcards":[]}`)
	assert.True(t, empty.OK())
	assert.Empty(t, empty.Cards)

	atLimit := ParseFlashcards(cardJSON(strings.Repeat("q", 200), strings.Repeat("a", 500)))
	assert.True(t, atLimit.OK(), atLimit.Reason)

	rejected := map[string]string{
		"front too long":   cardJSON(strings.Repeat("q", 201), "A"),
		"back too long":    cardJSON("Q", strings.Repeat("a", 501)),
		"empty":            "",
		"not json":         "flashcards: none",
		"missing key":      `{"cards":[]}`,
		"not an array":     `{"flashcards":{"front":"Q","back":"A"}}`,
		"null array":       `{"flashcards":null}`,
		"missing back":     `{"flashcards":[{"front":"Q"}]}`,
		"number front":     `{"flashcards":[{"front":1,"back":"A"}]}`,
		"extra field":      `{"flashcards":[{"front":"Q","back":"A","hint":"h"}]}`,
		"extra top level":  `{"flashcards":[],"note":"x"}`,
		"blank side":       `{"flashcards":[{"front":"  ","back":"A"}]}`,
		"trailing content": `{"flashcards":[]} {"flashcards":[]}`,
	}
	for name, content := range rejected {
		t.Run(name, func(t *testing.T) {
			res := ParseFlashcards(content)
			assert.False(t, res.OK())
			assert.NotEmpty(t, res.Reason)
			assert.Nil(t, res.Cards)
		})
	}
}

func cardJSON(front, back string) string {
	return `{"flashcards":[{"front":"` + front + `","back":"` + back + `"}]}`
}
