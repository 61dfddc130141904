package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/ledgerpen/internal/model"
	"github.com/ppiankov/ledgerpen/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noFooter    bool
	httpProxy   string
	httpsProxy  string
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file-or-url>",
	Short: "Analyze a document for transition gaps and factual claims",
	Long: `Analyze runs both writing scanners over a document:
- Detect paragraph boundaries that would read better with a transition
- Detect factual claims (statistics, dates, quotes, attributions) and
  score how much verification each one deserves

The input is a local text or HTML file, or an http(s) URL.

Example:
  ledgerpen analyze draft.txt
  ledgerpen analyze notes.html --json report.json --md report.md
  ledgerpen analyze https://example.com/posts/quarterly-review`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags (used when the argument is a URL)
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analyze timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Ledgerpen/0.1 (+https://github.com/ppiankov/ledgerpen)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// LLM flags (reserved for interactive suggestion flows; analysis itself
	// never calls the provider)
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "suggestion provider (openai, mock)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "suggestion model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	target := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildAnalyzeConfig()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", target)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintln(os.Stderr)
	}

	analyzer := pipeline.NewAnalyzer(cfg)

	var report *model.Report
	var err error
	if isURL(target) {
		report, err = analyzer.AnalyzeURL(ctx, target)
	} else {
		report, err = analyzer.AnalyzeFile(target)
	}
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Scanned %d paragraph boundaries\n", len(report.Gaps))
		fmt.Fprintf(os.Stderr, "✓ Detected %d factual claims\n", len(report.Claims))
		fmt.Fprintln(os.Stderr)
	}

	if err := analyzer.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildAnalyzeConfig layers the analyze flags over the defaults
func buildAnalyzeConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	return cfg
}

func isURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}
