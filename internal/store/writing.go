package store

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/ppiankov/ledgerpen/internal/analyze"
	"github.com/ppiankov/ledgerpen/internal/model"
	"github.com/ppiankov/ledgerpen/internal/suggest"
	"github.com/ppiankov/ledgerpen/internal/worker"
)

var (
	// ErrNoGapSelected is returned when a transition is applied without an
	// active gap selection.
	ErrNoGapSelected = errors.New("no gap selected")

	// ErrUnknownSuggestion is returned when the suggestion id does not
	// belong to the current selection.
	ErrUnknownSuggestion = errors.New("unknown suggestion")
)

// WritingStore owns one draft document and its analysis state: detected
// paragraph gaps, factual-claim findings, the dismissed-claim set, and the
// apply/undo edit history. Analysis reruns are debounced so typing does not
// trigger a scan per keystroke.
type WritingStore struct {
	mu        sync.Mutex
	editor    *analyze.Editor
	debouncer *worker.Debouncer
	rng       *rand.Rand
	provider  suggest.Provider // optional, nil disables AI suggestions

	gaps      []model.ParagraphGap
	analysis  model.Analysis
	dismissed map[string]bool

	selected    int // index into gaps, -1 when none
	suggestions []model.TransitionSuggestion

	onChange func(text string, cursor int) // UI write-back hook, may be nil
}

// NewWritingStore creates a writing store. rng may be nil (a time-seeded
// source is used); provider may be nil (AI suggestions disabled).
func NewWritingStore(rng *rand.Rand, provider suggest.Provider, debounce time.Duration) *WritingStore {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if debounce <= 0 {
		debounce = 400 * time.Millisecond
	}

	return &WritingStore{
		editor:    analyze.NewEditor(""),
		debouncer: worker.NewDebouncer(debounce),
		rng:       rng,
		provider:  provider,
		dismissed: make(map[string]bool),
		selected:  -1,
	}
}

// OnChange registers a hook that receives the buffer and cursor after every
// engine-driven edit (apply/undo). The UI layer writes the buffer back into
// its text control and triggers whatever change notification it needs.
func (s *WritingStore) OnChange(fn func(text string, cursor int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// SetText replaces the draft and schedules a debounced re-analysis
func (s *WritingStore) SetText(text string, cursor int) {
	s.mu.Lock()
	s.editor.SetText(text, cursor)
	s.mu.Unlock()

	s.debouncer.Trigger(s.Reanalyze)
}

// Text returns the current draft buffer
func (s *WritingStore) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Text()
}

// Cursor returns the current cursor offset
func (s *WritingStore) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Cursor()
}

// WordCount returns the draft's word count
func (s *WritingStore) WordCount() int {
	return analyze.CountWords(s.Text())
}

// Reanalyze reruns both scanners synchronously. Results are recomputed
// wholesale; gap selection is cleared because positions may have shifted.
// Dismissals survive because claim ids derive from content, not randomness.
func (s *WritingStore) Reanalyze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reanalyzeLocked()
}

func (s *WritingStore) reanalyzeLocked() {
	text := s.editor.Text()

	s.gaps = analyze.DetectParagraphGaps(text)
	s.analysis = analyze.AnalyzeFactualClaims(text)
	for i := range s.analysis.Claims {
		if s.dismissed[s.analysis.Claims[i].ID] {
			s.analysis.Claims[i].IsDismissed = true
		}
	}

	s.selected = -1
	s.suggestions = nil
}

// Flush runs any pending debounced re-analysis immediately
func (s *WritingStore) Flush() {
	s.debouncer.Flush()
}

// Gaps returns a copy of the detected paragraph gaps
func (s *WritingStore) Gaps() []model.ParagraphGap {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ParagraphGap, len(s.gaps))
	copy(out, s.gaps)
	return out
}

// Claims returns a copy of the detected factual claims
func (s *WritingStore) Claims() []model.Claim {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Claim, len(s.analysis.Claims))
	copy(out, s.analysis.Claims)
	return out
}

// OverallConfidence returns the document-level claim confidence
func (s *WritingStore) OverallConfidence() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis.OverallConfidence
}

// SelectGap activates a gap and generates its candidate suggestions.
// Suggestions live only as long as the selection.
func (s *WritingStore) SelectGap(index int) ([]model.TransitionSuggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.gaps) {
		return nil, ErrNoGapSelected
	}

	s.selected = index
	s.suggestions = analyze.GenerateSuggestions(s.gaps[index], s.rng)

	out := make([]model.TransitionSuggestion, len(s.suggestions))
	copy(out, s.suggestions)
	return out, nil
}

// DeselectGap clears the active gap and discards its suggestions
func (s *WritingStore) DeselectGap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = -1
	s.suggestions = nil
}

// AISuggestions asks the configured provider for additional phrasings for
// the selected gap. Returns nil when no provider is configured.
func (s *WritingStore) AISuggestions(ctx context.Context, max int) ([]model.TransitionSuggestion, error) {
	s.mu.Lock()
	if s.selected < 0 {
		s.mu.Unlock()
		return nil, ErrNoGapSelected
	}
	gap := s.gaps[s.selected]
	provider := s.provider
	s.mu.Unlock()

	if provider == nil {
		return nil, nil
	}

	return provider.Suggest(ctx, suggest.Request{
		BeforeText:     gap.BeforeText,
		AfterText:      gap.AfterText,
		Categories:     analyze.DetectCategories(gap.BeforeText),
		MaxSuggestions: max,
	})
}

// ApplyTransition inserts the chosen suggestion at the selected gap's
// boundary, re-analyzes immediately so positions and word counts stay
// correct, and notifies the UI hook.
func (s *WritingStore) ApplyTransition(suggestionID string) error {
	s.mu.Lock()

	if s.selected < 0 {
		s.mu.Unlock()
		return ErrNoGapSelected
	}

	var phrase string
	found := false
	for _, sugg := range s.suggestions {
		if sugg.ID == suggestionID {
			phrase = sugg.Text
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return ErrUnknownSuggestion
	}

	gap := s.gaps[s.selected]
	if err := s.editor.ApplyTransition(gap.Position, phrase); err != nil {
		s.mu.Unlock()
		return err
	}

	s.reanalyzeLocked()
	text, cursor := s.editor.Text(), s.editor.Cursor()
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(text, cursor)
	}

	return nil
}

// Undo reverts the most recent applied transition and re-analyzes.
// Returns false when there is nothing to undo.
func (s *WritingStore) Undo() bool {
	s.mu.Lock()

	if !s.editor.Undo() {
		s.mu.Unlock()
		return false
	}

	s.reanalyzeLocked()
	text, cursor := s.editor.Text(), s.editor.Cursor()
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(text, cursor)
	}

	return true
}

// DismissClaim hides a claim from the UI. Dismissal is keyed by the claim's
// content-derived id, so it survives re-analysis of unchanged text.
func (s *WritingStore) DismissClaim(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dismissed[id] = true
	for i := range s.analysis.Claims {
		if s.analysis.Claims[i].ID == id {
			s.analysis.Claims[i].IsDismissed = true
		}
	}
}

// RestoreClaim undoes a dismissal
func (s *WritingStore) RestoreClaim(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.dismissed, id)
	for i := range s.analysis.Claims {
		if s.analysis.Claims[i].ID == id {
			s.analysis.Claims[i].IsDismissed = false
		}
	}
}
