package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/ledgerpen/internal/analyze"
	"github.com/ppiankov/ledgerpen/internal/model"
)

// Analyzer orchestrates the writing scanners over whole documents: it runs
// the transition-gap detector and the factual-claim detector and folds their
// findings into a single report. It is the offline counterpart of the
// interactive writing store.
type Analyzer struct {
	fetcher  *Fetcher
	renderer *Renderer
	config   *model.Config
}

// NewAnalyzer creates an analyzer with the given configuration
func NewAnalyzer(cfg *model.Config) *Analyzer {
	return &Analyzer{
		fetcher:  NewFetcher(cfg.HTTP),
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
	}
}

// AnalyzeText runs both scanners over plain text
func (a *Analyzer) AnalyzeText(subject, text string) *model.Report {
	gaps := analyze.DetectParagraphGaps(text)
	analysis := analyze.AnalyzeFactualClaims(text)

	needsWork := 0
	for _, gap := range gaps {
		if gap.NeedsTransition {
			needsWork++
		}
	}

	paragraphs := 0
	for _, chunk := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(chunk) != "" {
			paragraphs++
		}
	}

	return &model.Report{
		Subject:           subject,
		AnalyzedAt:        time.Now().UTC(),
		WordCount:         analyze.CountWords(text),
		Paragraphs:        paragraphs,
		Gaps:              gaps,
		Claims:            analysis.Claims,
		OverallConfidence: analysis.OverallConfidence,
		GapsNeedingWork:   needsWork,
	}
}

// AnalyzeFile reads a document from disk and analyzes it. HTML files are
// stripped to text first.
func (a *Analyzer) AnalyzeFile(path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	text := string(data)
	if isHTMLPath(path) {
		text, err = analyze.StripHTML(text)
		if err != nil {
			return nil, fmt.Errorf("strip html: %w", err)
		}
	}

	subject := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return a.AnalyzeText(subject, text), nil
}

// AnalyzeURL fetches a remote document and analyzes it. HTML responses are
// stripped to text first.
func (a *Analyzer) AnalyzeURL(ctx context.Context, rawURL string) (*model.Report, error) {
	result, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	text := result.Body
	if strings.Contains(result.ContentType, "html") {
		text, err = analyze.StripHTML(text)
		if err != nil {
			return nil, fmt.Errorf("strip html: %w", err)
		}
	}

	return a.AnalyzeText(result.Subject, text), nil
}

// RenderReport renders the report to the requested outputs and prints a
// summary to stdout.
func (a *Analyzer) RenderReport(report *model.Report, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := a.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := a.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	a.renderer.RenderSummary(report)
	return nil
}

func isHTMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
