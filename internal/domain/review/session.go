package review

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/phrazzld/tenx-cards/internal/domain"
)

// Status is a candidate's review decision.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusEdited   Status = "edited"
	StatusRejected Status = "rejected"
)

// User-facing messages.
const (
	MsgGenerationFailed    = "Failed to generate flashcards. Please try again."
	MsgSaveFailed          = "Failed to save flashcards. Please try again."
	MsgMissingGenerationID = "Generation ID is missing. Please try again."
)

var (
	// ErrMissingGenerationID is returned by Save when no generation is loaded.
	ErrMissingGenerationID = errors.New(MsgMissingGenerationID)

	// ErrNothingToSave is returned by Save when the filter selects no candidates.
	ErrNothingToSave = errors.New("no flashcards selected")

	ErrNoSaver = errors.New("review: nil saver")
)

// Candidate is a reviewed flashcard proposal.
type Candidate struct {
	Front  string
	Back   string
	Status Status
}

// Saver persists a selection of flashcards. The API client implements it.
type Saver interface {
	SaveFlashcards(ctx context.Context, generationID int64, cards []domain.NewFlashcard) ([]domain.Flashcard, error)
}

// Session is the review state for the current page or terminal run. It is
// created empty, loaded with Init after a generation and cleared with Reset.
// Mutations replace whole candidate records by index under a lock.
type Session struct {
	mu           sync.Mutex
	sourceText   string
	generationID *int64
	candidates   []Candidate
	lastError    string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Init loads a generation result. Every candidate starts pending.
func (s *Session) Init(sourceText string, generationID int64, generated []domain.FlashcardCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := make([]Candidate, len(generated))
	for i, c := range generated {
		candidates[i] = Candidate{Front: c.Front, Back: c.Back, Status: StatusPending}
	}

	id := generationID
	s.sourceText = sourceText
	s.generationID = &id
	s.candidates = candidates
	s.lastError = ""
}

// Reset clears the form, the candidate list and the generation id.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sourceText = ""
	s.generationID = nil
	s.candidates = nil
	s.lastError = ""
}

// FailGeneration records a failed generation attempt for display.
func (s *Session) FailGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = MsgGenerationFailed
}

// SourceText returns the text in the input form.
func (s *Session) SourceText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sourceText
}

// GenerationID returns the loaded generation id, if any.
func (s *Session) GenerationID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generationID == nil {
		return 0, false
	}
	return *s.generationID, true
}

// LastError returns the message of the last failed operation, or "".
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Candidates returns a copy of the candidate list.
func (s *Session) Candidates() []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Len is the number of candidates.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.candidates)
}

// Accept marks candidate i accepted. Accepted and edited candidates are left
// as they are. Out-of-range indices are ignored.
func (s *Session) Accept(i int) {
	s.update(i, func(c Candidate) (Candidate, error) {
		if c.Status == StatusAccepted || c.Status == StatusEdited {
			return c, nil
		}
		c.Status = StatusAccepted
		return c, nil
	})
}

// Reject marks candidate i rejected from any state. Out-of-range indices are
// ignored.
func (s *Session) Reject(i int) {
	s.update(i, func(c Candidate) (Candidate, error) {
		c.Status = StatusRejected
		return c, nil
	})
}

// Edit replaces front and back of candidate i and marks it edited. Invalid
// content leaves the candidate untouched and returns a *domain.ValidationError.
// Out-of-range indices are ignored.
func (s *Session) Edit(i int, front, back string) error {
	return s.update(i, func(c Candidate) (Candidate, error) {
		if err := domain.ValidateFront(front); err != nil {
			return c, err
		}
		if err := domain.ValidateBack(back); err != nil {
			return c, err
		}
		return Candidate{Front: front, Back: back, Status: StatusEdited}, nil
	})
}

func (s *Session) update(i int, fn func(Candidate) (Candidate, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.candidates) {
		return nil
	}
	next, err := fn(s.candidates[i])
	if err != nil {
		return err
	}
	s.candidates[i] = next
	return nil
}

// CountAccepted is the number of accepted or edited candidates.
func (s *Session) CountAccepted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countWhere(s.candidates, isAccepted)
}

// NonRejectedCount is the number of candidates Save All would store.
func (s *Session) NonRejectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countWhere(s.candidates, isNotRejected)
}

// CanSaveSelected reports whether Save Selected is enabled.
func (s *Session) CanSaveSelected() bool {
	return s.CountAccepted() > 0
}

// CanSaveAll reports whether Save All is offered.
func (s *Session) CanSaveAll() bool {
	return s.NonRejectedCount() > 0
}

// SelectionSummary is the counter line shown next to the save actions.
func (s *Session) SelectionSummary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("%d of %d flashcards selected",
		countWhere(s.candidates, isAccepted), len(s.candidates))
}

// Selection returns the flashcards a save would store. With saveAll every
// non-rejected candidate is included, otherwise only accepted and edited
// ones. Order follows the candidate list.
func (s *Session) Selection(saveAll bool) []domain.NewFlashcard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectionLocked(saveAll)
}

func (s *Session) selectionLocked(saveAll bool) []domain.NewFlashcard {
	keep := isAccepted
	if saveAll {
		keep = isNotRejected
	}

	var out []domain.NewFlashcard
	for _, c := range s.candidates {
		if !keep(c) {
			continue
		}
		source := domain.SourceAIFull
		if c.Status == StatusEdited {
			source = domain.SourceAIEdited
		}
		out = append(out, domain.NewFlashcard{
			Front:        c.Front,
			Back:         c.Back,
			Source:       source,
			GenerationID: s.generationID,
		})
	}
	return out
}

// Save stores the selection through saver. On success the session is reset;
// on failure every candidate and the generation id are kept and LastError is
// set. The lock is not held while saver runs, so a generation loaded by Init
// in the meantime is left untouched by a successful save.
func (s *Session) Save(ctx context.Context, saver Saver, saveAll bool) ([]domain.Flashcard, error) {
	if saver == nil {
		return nil, ErrNoSaver
	}

	s.mu.Lock()
	if s.generationID == nil {
		s.lastError = MsgMissingGenerationID
		s.mu.Unlock()
		return nil, ErrMissingGenerationID
	}
	loaded := s.generationID
	selection := s.selectionLocked(saveAll)
	s.mu.Unlock()

	if len(selection) == 0 {
		return nil, ErrNothingToSave
	}

	saved, err := saver.SaveFlashcards(ctx, *loaded, selection)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastError = MsgSaveFailed
		return nil, fmt.Errorf("save flashcards: %w", err)
	}

	if s.generationID == loaded {
		s.sourceText = ""
		s.generationID = nil
		s.candidates = nil
		s.lastError = ""
	}
	return saved, nil
}

func isAccepted(c Candidate) bool {
	return c.Status == StatusAccepted || c.Status == StatusEdited
}

func isNotRejected(c Candidate) bool {
	return c.Status != StatusRejected
}

func countWhere(cs []Candidate, pred func(Candidate) bool) int {
	n := 0
	for _, c := range cs {
		if pred(c) {
			n++
		}
	}
	return n
}
