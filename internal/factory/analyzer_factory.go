package factory

import (
	"fmt"

	"github.com/mikey/clipboard-historian/internal/analysis"
	"github.com/mikey/clipboard-historian/internal/config"
	"go.uber.org/zap"
)

// AnalyzerFactory creates content analyzers from configuration
type AnalyzerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAnalyzerFactory creates a new analyzer factory
func NewAnalyzerFactory(cfg *config.Config, logger *zap.Logger) *AnalyzerFactory {
	return &AnalyzerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAnalyzer creates the analyzer with the configured budget and toggles
func (f *AnalyzerFactory) CreateAnalyzer() (*analysis.Analyzer, error) {
	timeout, err := f.cfg.GetDuration("analysis.timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid analysis timeout: %w", err)
	}

	analysisCfg := analysis.Config{
		SimilarityThreshold: f.cfg.GetFloat64("analysis.similarity_threshold"),
		Timeout:             timeout,
		MaxContentSize:      f.cfg.GetInt("analysis.max_content_size"),
		ProducerDetection:   f.cfg.GetBool("analysis.producer_detection"),
		RedundancyScoring:   f.cfg.GetBool("analysis.redundancy_scoring"),
		LogDetails:          f.cfg.GetBool("analysis.log_details"),
	}

	return analysis.NewAnalyzer(analysisCfg, f.logger), nil
}
