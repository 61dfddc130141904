package analyze

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/ppiankov/ledgerpen/internal/model"
)

const (
	// contextWindow bounds the before/after text captured around a boundary
	contextWindow = 100

	// needsTransitionThreshold is the score above which a gap is flagged
	needsTransitionThreshold = 0.4

	// gapBaseScore is the starting score for every paragraph boundary
	gapBaseScore = 0.3

	// categoryHitBonus is added once per keyword category detected in the
	// preceding paragraph's ending
	categoryHitBonus = 0.15

	// shortSentencePenalty is added when the preceding paragraph's
	// sentences average fewer than shortSentenceWords words
	shortSentencePenalty = 0.2
	shortSentenceWords   = 10
)

// transitionStarters are phrases that already open a paragraph as a
// transition. Matched case-insensitively as a prefix after trimming.
var transitionStarters = []string{
	"however", "therefore", "moreover", "furthermore", "additionally",
	"consequently", "meanwhile", "nevertheless", "nonetheless",
	"in addition", "in contrast", "in conclusion", "in fact",
	"for example", "for instance", "as a result", "on the other hand",
	"similarly", "likewise", "finally", "first", "second", "third",
	"next", "then", "thus", "instead", "conversely", "subsequently",
}

// categoryKeywords drive both gap scoring and suggestion selection.
// A hit means the paragraph ending already leans toward that rhetorical
// move, so a matching transition would read naturally.
var categoryKeywords = map[model.TransitionCategory][]string{
	model.TransitionContrast: {
		"but", "although", "though", "yet", "despite", "whereas",
		"unlike", "instead", "contrary", "opposite",
	},
	model.TransitionCausal: {
		"because", "since", "thus", "cause", "caused", "effect",
		"result", "results", "due", "leads", "led", "reason",
	},
	model.TransitionTemporal: {
		"when", "after", "before", "during", "until", "now",
		"later", "soon", "recently", "earlier", "eventually",
	},
	model.TransitionEmphasis: {
		"important", "importantly", "significant", "critical",
		"essential", "key", "notably", "crucial", "vital",
	},
}

// transitionPhrases are the fixed candidate lists per category
var transitionPhrases = map[model.TransitionCategory][]string{
	model.TransitionAdditive: {
		"Moreover,", "Furthermore,", "In addition,", "Additionally,",
		"What's more,", "Beyond that,",
	},
	model.TransitionContrast: {
		"However,", "On the other hand,", "In contrast,",
		"Nevertheless,", "Conversely,", "That said,",
	},
	model.TransitionCausal: {
		"As a result,", "Therefore,", "Consequently,",
		"For this reason,", "Thus,", "Because of this,",
	},
	model.TransitionTemporal: {
		"Meanwhile,", "Subsequently,", "Afterward,",
		"In the meantime,", "Later on,", "Soon after,",
	},
	model.TransitionEmphasis: {
		"Indeed,", "In fact,", "Notably,", "Above all,",
		"Importantly,", "Most of all,",
	},
}

var categoryDescriptions = map[model.TransitionCategory]string{
	model.TransitionAdditive: "Adds information to the previous point",
	model.TransitionContrast: "Signals a shift or opposing idea",
	model.TransitionCausal:   "Connects a cause to its consequence",
	model.TransitionTemporal: "Orders events in time",
	model.TransitionEmphasis: "Highlights the importance of what follows",
}

// DetectParagraphGaps scans a document for paragraph boundaries that would
// likely read better with an inserted transition phrase. Fewer than two
// non-empty paragraphs yields an empty result. Empty paragraphs are skipped
// but still advance the character-offset cursor.
func DetectParagraphGaps(text string) []model.ParagraphGap {
	type paragraph struct {
		body  string
		start int
	}

	var paragraphs []paragraph
	cursor := 0
	for _, chunk := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(chunk) != "" {
			paragraphs = append(paragraphs, paragraph{body: chunk, start: cursor})
		}
		cursor += len(chunk) + 2 // account for the blank-line separator
	}

	if len(paragraphs) < 2 {
		return nil
	}

	var gaps []model.ParagraphGap
	for i := 0; i < len(paragraphs)-1; i++ {
		prev := paragraphs[i]
		next := paragraphs[i+1]

		before := tailWindow(prev.body, contextWindow)
		after := headWindow(next.body, contextWindow)
		position := prev.start + len(prev.body)

		hasStarter := startsWithTransition(after)

		score := gapBaseScore
		score += float64(len(DetectCategories(before))) * categoryHitBonus
		if avg := averageSentenceWords(prev.body); avg > 0 && avg < shortSentenceWords {
			score += shortSentencePenalty
		}
		if score > 1 {
			score = 1
		}

		gaps = append(gaps, model.ParagraphGap{
			Index:           len(gaps),
			BeforeText:      before,
			AfterText:       after,
			Position:        position,
			NeedsTransition: !hasStarter && score > needsTransitionThreshold,
			Score:           score,
		})
	}

	return gaps
}

// GenerateSuggestions proposes transition phrases for a gap: two
// pseudo-random picks from each category detected in the gap's preceding
// text, plus one pick from every remaining category for variety. Phrase
// selection is the only randomized step; pass a seeded rng for
// deterministic output.
func GenerateSuggestions(gap model.ParagraphGap, rng *rand.Rand) []model.TransitionSuggestion {
	detected := DetectCategories(gap.BeforeText)
	inDetected := make(map[model.TransitionCategory]bool, len(detected))
	for _, c := range detected {
		inDetected[c] = true
	}

	var suggestions []model.TransitionSuggestion
	add := func(category model.TransitionCategory, phrase string) {
		suggestions = append(suggestions, model.TransitionSuggestion{
			ID:          fmt.Sprintf("sugg-%d", len(suggestions)),
			Text:        phrase,
			Category:    category,
			Description: categoryDescriptions[category],
		})
	}

	for _, category := range detected {
		for _, phrase := range pickPhrases(rng, transitionPhrases[category], 2) {
			add(category, phrase)
		}
	}

	for _, category := range model.TransitionCategories {
		if inDetected[category] {
			continue
		}
		for _, phrase := range pickPhrases(rng, transitionPhrases[category], 1) {
			add(category, phrase)
		}
	}

	return suggestions
}

// DetectCategories reports which keyword categories appear in text, in the
// stable category order. The additive category has no trigger keywords; it
// only surfaces through the variety picks.
func DetectCategories(text string) []model.TransitionCategory {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		words[w] = true
	}

	var detected []model.TransitionCategory
	for _, category := range model.TransitionCategories {
		for _, kw := range categoryKeywords[category] {
			if words[kw] {
				detected = append(detected, category)
				break
			}
		}
	}

	return detected
}

// startsWithTransition reports whether a paragraph already opens with a
// known transition phrase (case-insensitive prefix match after trimming).
func startsWithTransition(paragraph string) bool {
	lower := strings.ToLower(strings.TrimSpace(paragraph))
	for _, starter := range transitionStarters {
		if !strings.HasPrefix(lower, starter) {
			continue
		}
		// Require a word boundary so "nowhere" does not match "now"
		rest := lower[len(starter):]
		if rest == "" || rest[0] == ' ' || rest[0] == ',' || rest[0] == '.' || rest[0] == ';' {
			return true
		}
	}
	return false
}

// pickPhrases selects up to n distinct phrases from list using rng
func pickPhrases(rng *rand.Rand, list []string, n int) []string {
	if n > len(list) {
		n = len(list)
	}
	picks := make([]string, 0, n)
	for _, idx := range rng.Perm(len(list))[:n] {
		picks = append(picks, list[idx])
	}
	return picks
}

// tailWindow returns the last n characters of s
func tailWindow(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// headWindow returns the first n characters of s
func headWindow(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
