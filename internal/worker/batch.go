package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ppiankov/ledgerpen/internal/model"
)

// Analyzer produces a writing-analysis report for one document file
type Analyzer interface {
	AnalyzeFile(path string) (*model.Report, error)
}

// DocumentResult is the outcome of analyzing one document
type DocumentResult struct {
	Path   string
	Report *model.Report
	Err    error
}

// BatchProcessor analyzes multiple documents concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes the given document paths concurrently and returns
// one result per path, in completion order.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []DocumentResult {
	if len(paths) == 0 {
		return nil
	}

	var mu sync.Mutex
	var results []DocumentResult

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		path := path
		pool.Submit(func(poolCtx context.Context) {
			if ctx.Err() != nil || poolCtx.Err() != nil {
				return
			}
			report, err := b.analyzer.AnalyzeFile(path)
			mu.Lock()
			results = append(results, DocumentResult{Path: path, Report: report, Err: err})
			mu.Unlock()
		})
	}

	pool.Wait()
	return results
}

// ProcessFile reads document paths from a list file and analyzes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]DocumentResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file (one per line),
// skipping blanks, comments, and duplicates.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
