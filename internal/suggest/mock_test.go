package suggest

import (
	"context"
	"testing"

	"github.com/ppiankov/ledgerpen/internal/model"
)

func TestMock_SuggestFollowsCategoryOrder(t *testing.T) {
	m := NewMock()

	suggestions, err := m.Suggest(context.Background(), Request{
		Categories:     []model.TransitionCategory{model.TransitionContrast, model.TransitionCausal},
		MaxSuggestions: 3,
	})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(suggestions))
	}

	// Two contrast phrases come first, then the first causal phrase
	wantCategories := []model.TransitionCategory{
		model.TransitionContrast,
		model.TransitionContrast,
		model.TransitionCausal,
	}
	for i, want := range wantCategories {
		if suggestions[i].Category != want {
			t.Errorf("suggestion %d category = %s, want %s", i, suggestions[i].Category, want)
		}
	}
	if suggestions[0].Text != "Even so," {
		t.Errorf("unexpected first phrase: %q", suggestions[0].Text)
	}
}

func TestMock_SuggestDefaults(t *testing.T) {
	m := NewMock()

	// No categories falls back to additive; no cap defaults to 3
	suggestions, err := m.Suggest(context.Background(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 additive phrases, got %d", len(suggestions))
	}
	for _, s := range suggestions {
		if s.Category != model.TransitionAdditive {
			t.Errorf("expected additive category, got %s", s.Category)
		}
	}
}

func TestMock_SuggestCap(t *testing.T) {
	m := NewMock()

	suggestions, err := m.Suggest(context.Background(), Request{
		Categories:     []model.TransitionCategory{model.TransitionContrast, model.TransitionCausal},
		MaxSuggestions: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(suggestions) != 1 {
		t.Errorf("expected cap of 1, got %d", len(suggestions))
	}
}

func TestMock_Identity(t *testing.T) {
	m := NewMock()
	if m.Name() != "mock" {
		t.Errorf("unexpected name: %s", m.Name())
	}
	if !m.IsAvailable(context.Background()) {
		t.Error("mock provider must always be available")
	}
}
