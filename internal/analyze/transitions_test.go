package analyze

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/ppiankov/ledgerpen/internal/model"
)

func TestDetectParagraphGaps_SingleParagraph(t *testing.T) {
	if gaps := DetectParagraphGaps("Only one paragraph here."); gaps != nil {
		t.Errorf("expected nil for single paragraph, got %d gaps", len(gaps))
	}
	if gaps := DetectParagraphGaps(""); gaps != nil {
		t.Errorf("expected nil for empty text, got %d gaps", len(gaps))
	}
}

func TestDetectParagraphGaps_ShortSentences(t *testing.T) {
	text := "Para A ends here.\n\nPara B begins plainly."
	gaps := DetectParagraphGaps(text)

	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}

	gap := gaps[0]
	// base 0.3 + short-sentence penalty 0.2
	if gap.Score < 0.49 || gap.Score > 0.51 {
		t.Errorf("expected score ~0.5, got %f", gap.Score)
	}
	if !gap.NeedsTransition {
		t.Error("expected gap to be flagged")
	}
	if gap.Position != len("Para A ends here.") {
		t.Errorf("expected position %d, got %d", len("Para A ends here."), gap.Position)
	}
	if gap.BeforeText != "Para A ends here." {
		t.Errorf("unexpected before text: %q", gap.BeforeText)
	}
	if gap.AfterText != "Para B begins plainly." {
		t.Errorf("unexpected after text: %q", gap.AfterText)
	}
}

func TestDetectParagraphGaps_CategoryBonus(t *testing.T) {
	before := "The quarterly numbers were strong but the underlying trend told a different story overall."
	text := before + "\n\nManagement stayed quiet about the forecast for the coming year ahead."
	gaps := DetectParagraphGaps(text)

	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}

	// base 0.3 + one category hit ("but" -> contrast) 0.15, no short-sentence
	// penalty because both sentences run long
	gap := gaps[0]
	if gap.Score < 0.44 || gap.Score > 0.46 {
		t.Errorf("expected score ~0.45, got %f", gap.Score)
	}
	if !gap.NeedsTransition {
		t.Error("expected gap to be flagged")
	}
}

func TestDetectParagraphGaps_ExistingStarterSuppresses(t *testing.T) {
	text := "Para A ends here.\n\nHowever, para B opens with a transition."
	gaps := DetectParagraphGaps(text)

	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}
	if gaps[0].NeedsTransition {
		t.Error("expected existing transition starter to suppress the flag")
	}
}

func TestDetectParagraphGaps_EmptyParagraphsAdvanceOffsets(t *testing.T) {
	text := "First paragraph.\n\n\n\nSecond paragraph after a double break."
	gaps := DetectParagraphGaps(text)

	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}
	if gaps[0].Position != len("First paragraph.") {
		t.Errorf("expected position %d, got %d", len("First paragraph."), gaps[0].Position)
	}
}

func TestDetectCategories(t *testing.T) {
	got := DetectCategories("but because when important")

	want := []model.TransitionCategory{
		model.TransitionContrast,
		model.TransitionCausal,
		model.TransitionTemporal,
		model.TransitionEmphasis,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DetectCategories = %v, want %v", got, want)
	}
}

func TestDetectCategories_None(t *testing.T) {
	if got := DetectCategories("plain words only here"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestStartsWithTransition(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"However, the plan changed.", true},
		{"  therefore it follows", true},
		{"In addition, we shipped.", true},
		{"Nextdoor neighbors agreed.", false}, // word boundary
		{"Nevertheless.", true},
		{"The plan changed.", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := startsWithTransition(tt.text); got != tt.want {
			t.Errorf("startsWithTransition(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestGenerateSuggestions_Counts(t *testing.T) {
	gap := model.ParagraphGap{
		BeforeText: "this happened because of that decision",
	}
	rng := rand.New(rand.NewSource(42))

	suggestions := GenerateSuggestions(gap, rng)

	// 2 from the detected causal category + 1 from each of the other 4
	if len(suggestions) != 6 {
		t.Fatalf("expected 6 suggestions, got %d", len(suggestions))
	}

	causal := 0
	for i, s := range suggestions {
		if s.ID == "" || s.Text == "" || s.Description == "" {
			t.Errorf("suggestion %d incomplete: %+v", i, s)
		}
		if s.Category == model.TransitionCausal {
			causal++
		}
	}
	if causal != 2 {
		t.Errorf("expected 2 causal suggestions, got %d", causal)
	}
}

func TestGenerateSuggestions_Deterministic(t *testing.T) {
	gap := model.ParagraphGap{BeforeText: "strong but uneven results"}

	first := GenerateSuggestions(gap, rand.New(rand.NewSource(7)))
	second := GenerateSuggestions(gap, rand.New(rand.NewSource(7)))

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical suggestions for identical seeds")
	}
}

func TestGenerateSuggestions_NoDuplicatePhrasesPerCategory(t *testing.T) {
	gap := model.ParagraphGap{BeforeText: "it failed because the cause was clear"}
	suggestions := GenerateSuggestions(gap, rand.New(rand.NewSource(3)))

	seen := make(map[string]bool)
	for _, s := range suggestions {
		key := string(s.Category) + "|" + s.Text
		if seen[key] {
			t.Errorf("duplicate phrase within category: %s", key)
		}
		seen[key] = true
	}
}
