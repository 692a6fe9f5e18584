package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mikey/clipboard-historian/internal/analysis"
	"github.com/mikey/clipboard-historian/internal/config"
	"github.com/mikey/clipboard-historian/internal/core"
	"github.com/mikey/clipboard-historian/internal/factory"
	"github.com/mikey/clipboard-historian/internal/logging"
	"go.uber.org/zap"
)

var (
	// Analysis flags
	htmlFile          = flag.String("html", "", "File containing the HTML clipboard payload")
	textFile          = flag.String("text", "", "File containing the plain-text clipboard payload")
	timeout           = flag.Duration("timeout", 200*time.Millisecond, "Analysis time budget")
	maxContentSize    = flag.Int("max-content-size", 1024*1024, "Maximum content size eligible for budgeted analysis")
	producerDetection = flag.Bool("producer-detection", true, "Enable producer detection")
	redundancyScoring = flag.Bool("redundancy-scoring", true, "Enable redundancy scoring")

	// History flags
	historyLimit = flag.Int("history", 0, "List the N most recent history records instead of analyzing")
	historyType  = flag.String("type", "", "Filter history listing by content type (text, html, rtf, image, files)")

	// General flags
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.Bool("use-config", false, "Load configuration from config file instead of flags")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := loadConfig(logger)

	if *historyLimit > 0 {
		if err := listHistory(cfg, logger); err != nil {
			logger.Fatal("Failed to list history", zap.Error(err))
		}
		return
	}

	if *htmlFile == "" || *textFile == "" {
		fmt.Println("Usage: clip-analyze -html <file> -text <file> [flags], or clip-analyze -history N")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := analyze(cfg, logger); err != nil {
		logger.Fatal("Analysis failed", zap.Error(err))
	}
}

// loadConfig builds configuration from the config file or from flags.
func loadConfig(logger *zap.Logger) *config.Config {
	if *configFile {
		cfg, err := config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		return cfg
	}

	v := config.NewEmptyViper()
	v.Set("analysis.timeout", timeout.String())
	v.Set("analysis.max_content_size", *maxContentSize)
	v.Set("analysis.producer_detection", *producerDetection)
	v.Set("analysis.redundancy_scoring", *redundancyScoring)
	v.Set("analysis.log_details", *verbose)
	return config.NewFromViper(v)
}

// analyze runs one HTML-vs-text decision and prints the full scoring detail.
func analyze(cfg *config.Config, logger *zap.Logger) error {
	html, err := os.ReadFile(*htmlFile)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}
	text, err := os.ReadFile(*textFile)
	if err != nil {
		return fmt.Errorf("failed to read text file: %w", err)
	}

	analyzer, err := factory.NewAnalyzerFactory(cfg, logger).CreateAnalyzer()
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Payload Summary ===\n")
	fmt.Printf("HTML length: %d bytes\n", len(html))
	fmt.Printf("Text length: %d bytes\n", len(text))

	fmt.Printf("\n=== Analysis ===\n")
	startTime := time.Now()
	res, err := analyzer.AnalyzeContent(string(html), string(text))
	duration := time.Since(startTime)

	if err != nil {
		var timeoutErr *analysis.AnalysisTimeoutError
		var sizeErr *analysis.ContentTooLargeError
		switch {
		case errors.As(err, &timeoutErr):
			fmt.Printf("Budgeted analysis timed out (%dms); fallback heuristic used\n", timeoutErr.BudgetMs)
		case errors.As(err, &sizeErr):
			fmt.Printf("Content too large (%d > %d); fallback heuristic used\n", sizeErr.Size, sizeErr.Limit)
		default:
			fmt.Printf("Budgeted analysis unavailable (%v); fallback heuristic used\n", err)
		}
		verdict := analysis.FallbackDecision(string(html), string(text))
		printVerdict(verdict, duration)
		return nil
	}

	fmt.Printf("Content similarity: %.2f\n", res.Similarity)
	fmt.Printf("Tag density: %.3f\n", res.TagDensity)
	fmt.Printf("HTML/Text ratio: %.2f\n", res.HTMLTextRatio)
	fmt.Printf("Value score: %.2f\n", res.ValueScore)
	fmt.Printf("Redundancy score: %.2f\n", res.RedundancyScore)
	fmt.Printf("Net score: %.2f\n", res.NetScore())
	if res.Producer != nil {
		fmt.Printf("Detected producer: %s (confidence: %.2f)\n", res.Producer.Producer, res.Producer.Confidence)
	} else {
		fmt.Printf("Detected producer: none\n")
	}
	fmt.Printf("Features: rich=%t structure=%t links=%t styling=%t\n",
		res.Features.RichContent, res.Features.ComplexStructure,
		res.Features.MultipleLinks, res.Features.MeaningfulStyling)

	printVerdict(analyzer.Decide(res), duration)
	return nil
}

func printVerdict(preferHTML bool, duration time.Duration) {
	fmt.Printf("\n=== Verdict ===\n")
	if preferHTML {
		fmt.Printf("Persist: HTML\n")
	} else {
		fmt.Printf("Persist: TEXT\n")
	}
	fmt.Printf("Processing time: %v\n", duration)
}

// listHistory prints the most recent captured records.
func listHistory(cfg *config.Config, logger *zap.Logger) error {
	repo, err := factory.NewHistoryFactory(cfg, logger).CreateRepository()
	if err != nil {
		return err
	}
	defer func() {
		if stopper, ok := repo.(interface{ Stop() }); ok {
			stopper.Stop()
		}
	}()

	records, err := repo.List(context.Background(), *historyLimit, 0, core.ContentType(*historyType))
	if err != nil {
		return err
	}

	fmt.Printf("\n=== History (%d records) ===\n", len(records))
	for _, rec := range records {
		fmt.Printf("[%d] %s  %-6s  %s  (%s)\n",
			rec.ID,
			rec.Timestamp.Format(time.RFC3339),
			rec.ContentType,
			rec.Preview,
			rec.SourceApp)
	}
	return nil
}
