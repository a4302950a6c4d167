// Package main is a one-shot analysis CLI. It runs the same pipeline as
// the API server against a single article and prints the verdict as JSON,
// which makes it handy for smoke tests and batch scripting without
// standing up the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"newstrust/internal/infra/classifier"
	"newstrust/internal/infra/fetcher"
	"newstrust/internal/infra/search"
	"newstrust/internal/infra/summarizer"
	"newstrust/internal/registry"
	analyzeUC "newstrust/internal/usecase/analyze"
	"newstrust/internal/usecase/verify"
)

func main() {
	textFlag := flag.String("text", "", "article text to analyze (use '-' to read from stdin)")
	urlFlag := flag.String("url", "", "article URL to fetch and analyze")
	timeoutFlag := flag.Duration("timeout", 60*time.Second, "overall analysis timeout")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if (*textFlag == "") == (*urlFlag == "") {
		fmt.Fprintln(os.Stderr, "provide exactly one of -text or -url")
		flag.Usage()
		os.Exit(2)
	}

	svc, err := buildService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	var result *analyzeUC.Result
	switch {
	case *urlFlag != "":
		result, err = svc.AnalyzeURL(ctx, *urlFlag)
	case *textFlag == "-":
		raw, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "read stdin: %v\n", readErr)
			os.Exit(1)
		}
		result, err = svc.AnalyzeText(ctx, string(raw))
	default:
		result, err = svc.AnalyzeText(ctx, *textFlag)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toOutput(result)); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		os.Exit(1)
	}
}

type sourceOutput struct {
	URL        string `json:"url"`
	Domain     string `json:"domain"`
	Title      string `json:"title"`
	Source     string `json:"source"`
	IsReliable bool   `json:"is_reliable"`
}

type output struct {
	Result        string         `json:"result"`
	Confidence    float64        `json:"confidence"`
	Summary       string         `json:"summary"`
	Explanation   []string       `json:"explanation"`
	Status        string         `json:"status"`
	Sources       []sourceOutput `json:"sources"`
	ReliableCount int            `json:"reliable_count"`
	Verification  string         `json:"verification_message"`
}

func toOutput(result *analyzeUC.Result) output {
	sources := make([]sourceOutput, 0, len(result.Corroboration.Sources))
	for _, src := range result.Corroboration.Sources {
		sources = append(sources, sourceOutput{
			URL:        src.URL,
			Domain:     src.Domain,
			Title:      src.Title,
			Source:     src.SourceName,
			IsReliable: src.IsReliable,
		})
	}

	explanation := result.Explanation
	if explanation == nil {
		explanation = []string{}
	}

	return output{
		Result:        string(result.Verdict),
		Confidence:    result.Confidence,
		Summary:       result.Summary,
		Explanation:   explanation,
		Status:        string(result.Corroboration.Status),
		Sources:       sources,
		ReliableCount: result.Corroboration.ReliableCount,
		Verification:  result.Corroboration.Message,
	}
}

// buildService assembles the pipeline without history persistence. The
// CLI is stateless: nothing it analyzes is recorded.
func buildService() (*analyzeUC.Service, error) {
	reg, err := registry.Load()
	if err != nil {
		return nil, fmt.Errorf("load reliability registry: %w", err)
	}

	searchCfg, err := search.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load search config: %w", err)
	}

	var primary summarizer.Summarizer
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		primary = summarizer.NewClaude(key)
	}

	return &analyzeUC.Service{
		Classifier: classifier.New(classifier.LoadConfigFromEnv()),
		Verifier: &verify.Service{
			Provider: search.NewClient(searchCfg),
			Registry: reg,
		},
		Summarizer: summarizer.NewFallback(primary),
		Fetcher:    fetcher.NewReadabilityFetcher(fetcher.LoadConfigFromEnv()),
	}, nil
}
