package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Accepted source text bounds, counted in characters.
const (
	MinSourceTextLength = 1000
	MaxSourceTextLength = 10000
)

// Generation records one LLM invocation and, once flashcards are saved
// against it, the acceptance statistics. The statistic fields stay nil until
// reconciliation runs.
type Generation struct {
	ID                    int64     `json:"id"`
	UserID                uuid.UUID `json:"user_id"`
	SourceTextHash        string    `json:"source_text_hash"`
	SourceTextLength      int       `json:"source_text_length"`
	Model                 string    `json:"model"`
	GeneratedCount        int       `json:"generated_count"`
	GenerationDuration    int       `json:"generation_duration"`
	AcceptedUneditedCount *int      `json:"accepted_unedited_count"`
	AcceptedEditedCount   *int      `json:"accepted_edited_count"`
	UnacceptedCount       *int      `json:"unaccepted_count"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// NewGeneration prepares the initial row for a submission: zero counts and
// createdAt set to when processing started.
func NewGeneration(userID uuid.UUID, sourceText, model string, startedAt time.Time) (*Generation, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}
	return &Generation{
		UserID:           userID,
		SourceTextHash:   HashSourceText(sourceText),
		SourceTextLength: utf8.RuneCountInString(sourceText),
		Model:            model,
		CreatedAt:        startedAt.UTC(),
		UpdatedAt:        startedAt.UTC(),
	}, nil
}

// ValidateSourceText enforces the MinSourceTextLength..MaxSourceTextLength bound.
func ValidateSourceText(text string) error {
	n := utf8.RuneCountInString(text)
	if n < MinSourceTextLength || n > MaxSourceTextLength {
		return NewValidationError("source_text",
			fmt.Sprintf("source text must be between %d and %d characters (got %d)",
				MinSourceTextLength, MaxSourceTextLength, n), nil)
	}
	return nil
}

// HashSourceText returns the hex MD5 digest used to group identical submissions.
func HashSourceText(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// DurationSeconds rounds an elapsed duration to whole seconds.
func DurationSeconds(d time.Duration) int {
	return int(d.Round(time.Second) / time.Second)
}

// AcceptanceStats are the reconciled counters for one generation.
type AcceptanceStats struct {
	AcceptedUnedited int
	AcceptedEdited   int
	Unaccepted       int
}

// ComputeAcceptanceStats counts AI-full and AI-edited sources and derives the
// unaccepted remainder. It fails with ErrStatsExceedGenerated when more cards
// were accepted than generated.
func ComputeAcceptanceStats(generatedCount int, sources []FlashcardSource) (AcceptanceStats, error) {
	var stats AcceptanceStats
	for _, s := range sources {
		switch s {
		case SourceAIFull:
			stats.AcceptedUnedited++
		case SourceAIEdited:
			stats.AcceptedEdited++
		}
	}

	accepted := stats.AcceptedUnedited + stats.AcceptedEdited
	if accepted > generatedCount {
		return AcceptanceStats{}, fmt.Errorf("%w: accepted %d, generated %d",
			ErrStatsExceedGenerated, accepted, generatedCount)
	}
	stats.Unaccepted = generatedCount - accepted
	return stats, nil
}
