package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/ledgerpen/internal/model"
)

// Renderer writes analysis reports as JSON, Markdown, and console summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new Renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// RenderMarkdown writes the report as a human-readable Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Writing Analysis: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "Analyzed: %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04 UTC"))
	fmt.Fprintf(&b, "- Words: %d\n", report.WordCount)
	fmt.Fprintf(&b, "- Paragraphs: %d\n", report.Paragraphs)
	fmt.Fprintf(&b, "- Overall claim confidence: %d/100\n\n", report.OverallConfidence)

	b.WriteString("## Transition Gaps\n\n")
	if len(report.Gaps) == 0 {
		b.WriteString("No paragraph boundaries to review.\n\n")
	} else {
		fmt.Fprintf(&b, "%d boundaries scanned, %d flagged.\n\n", len(report.Gaps), report.GapsNeedingWork)
		for _, gap := range report.Gaps {
			marker := " "
			if gap.NeedsTransition {
				marker = "!"
			}
			fmt.Fprintf(&b, "- [%s] boundary %d (score %.2f): ...%s | %s...\n",
				marker, gap.Index, gap.Score,
				tailWords(gap.BeforeText, 6), headWords(gap.AfterText, 6))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Factual Claims\n\n")
	if len(report.Claims) == 0 {
		b.WriteString("No checkable claims detected.\n\n")
	} else {
		for _, claim := range report.Claims {
			fmt.Fprintf(&b, "- **%s** (%s, %d/100): %q\n",
				claim.Status, claim.Category, claim.Confidence, claim.Text)
			if claim.Explanation != "" {
				fmt.Fprintf(&b, "  - %s\n", claim.Explanation)
			}
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by ledgerpen. Heuristic findings, not fact-checking verdicts.\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// RenderSummary prints a short summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Printf("\n%s\n", report.Subject)
	fmt.Printf("  Words: %d  Paragraphs: %d\n", report.WordCount, report.Paragraphs)
	fmt.Printf("  Transition gaps flagged: %d of %d\n", report.GapsNeedingWork, len(report.Gaps))
	fmt.Printf("  Claims found: %d  Overall confidence: %d/100\n", len(report.Claims), report.OverallConfidence)

	needsReview := 0
	for _, claim := range report.Claims {
		if claim.Status == model.StatusNeedsVerification || claim.Status == model.StatusQuestionable {
			needsReview++
		}
	}
	if needsReview > 0 {
		fmt.Printf("  Claims needing review: %d\n", needsReview)
	}
}

// tailWords returns the last n words of s
func tailWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}

// headWords returns the first n words of s
func headWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
