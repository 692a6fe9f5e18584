package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/clipboard-historian/internal/core"
	"github.com/mikey/clipboard-historian/internal/di"
	"github.com/mikey/clipboard-historian/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	runner ports.CaptureRunner,
	historyRepo core.HistoryRepository,
) error {
	defer logger.Sync()

	// Start the capture surface
	if err := runner.Start(); err != nil {
		logger.Fatal("Failed to start clipboard capture", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the capture surface
	if err := runner.Stop(); err != nil {
		logger.Error("Failed to stop clipboard capture", zap.Error(err))
	}

	// Stop the history store if needed
	if stopper, ok := historyRepo.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
