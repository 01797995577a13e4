// Command analyze runs a single fetch-and-classify pass for a subject and
// prints the results, without touching Postgres or Redis.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonesrussell/opinion-pulse/internal/analyzer"
	"github.com/jonesrussell/opinion-pulse/internal/config"
	"github.com/jonesrussell/opinion-pulse/internal/domain"
	"github.com/jonesrussell/opinion-pulse/internal/fetch"
	"github.com/jonesrussell/opinion-pulse/internal/logging"
	"github.com/jonesrussell/opinion-pulse/internal/processor"
	"github.com/jonesrussell/opinion-pulse/internal/sentiment"
)

const snippetLength = 60

func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	subject := flag.String("subject", "", "subject to analyze (required)")
	limit := flag.Int("limit", 0, "max posts to fetch (default from config)")
	jsonOut := flag.Bool("json", false, "emit the run as JSON instead of a table")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -subject <name> [-limit n] [-json]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *limit > 0 {
		cfg.Service.FetchLimit = *limit
	}

	// Keep service logs off the terminal output unless something fails.
	logger, err := logging.New(logging.Config{Level: "error", OutputPaths: []string{"stderr"}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	pipeline, err := analyzer.New(sentiment.NewVaderEngine(), analyzer.Config{
		TargetLanguage: cfg.Analysis.TargetLanguage,
		MinTextLength:  cfg.Analysis.MinTextLength,
		NewsMarkers:    cfg.Analysis.NewsMarkers,
		OpinionTerms:   cfg.Analysis.OpinionTerms,
		OpinionBand:    cfg.Analysis.OpinionBand,
		NonOpinionBand: cfg.Analysis.NonOpinionBand,
	}, nil, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyzer error: %v\n", err)
		os.Exit(1)
	}

	fetcher := fetch.NewTwitterClient(fetch.TwitterConfig{
		BaseURL:      cfg.Twitter.BaseURL,
		BearerToken:  cfg.Twitter.BearerToken,
		OpinionTerms: cfg.Analysis.OpinionTerms,
		Language:     cfg.Analysis.TargetLanguage,
		RPS:          cfg.Twitter.RPS,
		Burst:        cfg.Twitter.Burst,
	}, logger)

	runner := processor.NewRunner(
		fetcher,
		processor.NewBatchProcessor(pipeline, cfg.Service.Concurrency, logger),
		nil, nil, nil,
		processor.RunnerConfig{FetchLimit: cfg.Service.FetchLimit},
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	run, err := runner.RunOnce(ctx, *subject)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(run); err != nil {
			fmt.Fprintf(os.Stderr, "encode run: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printRun(run)
}

func printRun(run *domain.AnalysisRun) {
	fmt.Printf("Subject: %s\n", run.Subject)
	fmt.Printf("Fetched: %d  Analyzed: %d\n\n", run.FetchedCount, run.AnalyzedCount)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Label", "Count", "Percent", "Mean Confidence"})
	for _, label := range domain.Labels {
		t.AppendRow(table.Row{
			label,
			run.Summary.Counts[label],
			fmt.Sprintf("%.1f%%", run.Summary.Percentages[label]),
			fmt.Sprintf("%.2f", run.Summary.MeanConfidence[label]),
		})
	}
	t.AppendFooter(table.Row{"Total", run.Summary.Total, "", ""})
	t.Render()

	if len(run.RejectedCounts) > 0 {
		fmt.Println()
		r := table.NewWriter()
		r.SetOutputMirror(os.Stdout)
		r.AppendHeader(table.Row{"Rejection Reason", "Count"})
		for reason, count := range run.RejectedCounts {
			r.AppendRow(table.Row{string(reason), count})
		}
		r.Render()
	}
}
