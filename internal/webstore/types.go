package webstore

import "fmt"

// Request describes a single extension retrieval. A Request is built
// once by the caller and never mutated by the Retriever.
type Request struct {
	// ID is the 32-character extension identifier.
	ID string

	// Name is the base filename for the two output files. Defaults
	// to ID. The Retriever treats it as pre-sanitized; deriving a
	// friendly name from a store URL is the caller's concern.
	Name string

	// ProdVersion is the impersonated Chrome version. Defaults to
	// DefaultProdVersion.
	ProdVersion string

	// OutputDir is the destination directory, created if absent.
	// Defaults to DefaultOutputDir.
	OutputDir string

	// HopBudget bounds the redirect chain. Negative selects the
	// fetcher's default.
	HopBudget int
}

// Result carries the two files written by a successful retrieval.
type Result struct {
	ContainerPath string // raw .crx container
	ArchivePath   string // stripped .zip archive
}

// DownloadError indicates that the endpoint answered the download
// request with a terminal non-200 status. The endpoint answers 204
// for unknown extension IDs and for prodversions too old to serve.
type DownloadError struct {
	StatusCode int
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed with status %d", e.StatusCode)
}

// Logger provides structured logging for retrieval operations.
// This interface allows callers to plug in their own logging
// implementation.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs warning-level messages with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})
}

// noopLogger is a Logger implementation that does nothing.
// This is the default logger used when none is provided.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Error(msg string, keysAndValues ...interface{}) {}
