package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/clipboard-historian/internal/adapters/attribution"
	"github.com/mikey/clipboard-historian/internal/adapters/clipboard"
	"github.com/mikey/clipboard-historian/internal/adapters/notify"
	"github.com/mikey/clipboard-historian/internal/analysis"
	"github.com/mikey/clipboard-historian/internal/config"
	"github.com/mikey/clipboard-historian/internal/core"
	"github.com/mikey/clipboard-historian/internal/factory"
	"github.com/mikey/clipboard-historian/internal/ignorelist"
	"github.com/mikey/clipboard-historian/internal/logging"
	"github.com/mikey/clipboard-historian/internal/ports"
	"github.com/mikey/clipboard-historian/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewAnalyzerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewHistoryFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCaptureFactory); err != nil {
		return nil, err
	}

	// Register analyzer and expose it as the HTML-vs-text decider
	if err := container.Provide(func(f *factory.AnalyzerFactory) (*analysis.Analyzer, error) {
		return f.CreateAnalyzer()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(a *analysis.Analyzer) core.FormatDecider {
		return a
	}); err != nil {
		return nil, err
	}

	// Register history repository
	if err := container.Provide(func(f *factory.HistoryFactory) (core.HistoryRepository, error) {
		return f.CreateRepository()
	}); err != nil {
		return nil, err
	}

	// Register clipboard source and attribution
	if err := container.Provide(func(logger *zap.Logger) core.ClipboardSource {
		return clipboard.NewSystemSource(logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func() core.AttributionSource {
		return attribution.NewUnsupported()
	}); err != nil {
		return nil, err
	}

	// Register notifier
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.Notifier {
		if cfg.GetBool("notify.enabled") {
			return notify.NewDesktopNotifier(logger)
		}
		return notify.NoopNotifier{}
	}); err != nil {
		return nil, err
	}

	// Register ignore list
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *ignorelist.Checker {
		ignoredApps := cfg.GetStringSlice("capture.ignored_apps")
		return ignorelist.NewChecker(ignoredApps, logger)
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register capture service
	if err := container.Provide(func(
		cfg *config.Config,
		source core.ClipboardSource,
		repo core.HistoryRepository,
		decider core.FormatDecider,
		attr core.AttributionSource,
		notifier core.Notifier,
		ignored *ignorelist.Checker,
		processor *utils.TextProcessor,
		logger *zap.Logger,
	) *core.CaptureService {
		return core.NewCaptureService(
			source,
			repo,
			decider,
			attr,
			notifier,
			ignored,
			processor,
			logger,
			cfg.GetInt("history.preview_max_chars"),
		)
	}); err != nil {
		return nil, err
	}

	// Register capture runner
	if err := container.Provide(func(f *factory.CaptureFactory) (ports.CaptureRunner, error) {
		return f.CreateCaptureRunner()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
