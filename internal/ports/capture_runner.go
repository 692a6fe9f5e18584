package ports

// CaptureRunner defines the interface for the long-running capture surface
// that feeds clipboard changes into the pipeline.
type CaptureRunner interface {
	// Start starts the capture runner
	Start() error

	// Stop stops the capture runner
	Stop() error
}
