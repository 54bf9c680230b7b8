package webstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/akhileshthite/chrome-extension-fetch/internal/crx"
	"github.com/akhileshthite/chrome-extension-fetch/internal/fetch"
	"github.com/akhileshthite/chrome-extension-fetch/internal/platform"
)

// Retriever orchestrates extension retrieval: update-endpoint fetch,
// streaming persistence of the container, and CRX→ZIP conversion.
type Retriever struct {
	endpoint string
	fetcher  *fetch.Fetcher
	platform *platform.Info
	logger   Logger
}

// Config holds configuration for the Retriever.
type Config struct {
	// Endpoint overrides the update endpoint (tests point this at a
	// mock server). Default: DefaultEndpoint.
	Endpoint string

	// PlatformInfo feeds the impersonated User-Agent. Required.
	PlatformInfo *platform.Info

	// Timeout bounds each HTTP request. Zero keeps the fetcher's
	// default.
	Timeout time.Duration

	// Logger receives retrieval progress. Default: no-op.
	Logger Logger
}

// NewRetriever creates a new retriever.
func NewRetriever(config Config) (*Retriever, error) {
	if config.PlatformInfo == nil {
		return nil, fmt.Errorf("PlatformInfo is required")
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	fetcher := fetch.NewFetcher()
	if config.Timeout > 0 {
		fetcher = fetch.NewFetcherWithTimeout(config.Timeout)
	}

	logger := config.Logger
	if logger == nil {
		logger = &noopLogger{}
	}

	return &Retriever{
		endpoint: endpoint,
		fetcher:  fetcher,
		platform: config.PlatformInfo,
		logger:   logger,
	}, nil
}

// Retrieve downloads the extension described by req and converts it,
// returning the paths of the container and archive files.
//
// The container is streamed to disk; it is never held fully in memory
// during the download. Conversion then re-reads the written container,
// which is acceptable for header inspection since containers are
// modest in size.
func (r *Retriever) Retrieve(ctx context.Context, req Request) (*Result, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("extension ID is required")
	}

	name := req.Name
	if name == "" {
		name = req.ID
	}
	prodVersion := req.ProdVersion
	if prodVersion == "" {
		prodVersion = DefaultProdVersion
	}
	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	hopBudget := req.HopBudget
	if hopBudget < 0 {
		hopBudget = fetch.DefaultHopBudget
	}

	retrievalID := uuid.NewString()
	logger := retrievalLogger{base: r.logger, id: retrievalID, extension: req.ID}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	url := UpdateURL(r.endpoint, req.ID, prodVersion)
	header := RequestHeader(prodVersion, r.platform)

	logger.Debug("requesting extension", "url", url, "prodversion", prodVersion)

	resp, err := r.fetcher.Fetch(ctx, url, header, hopBudget)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection is released before failing.
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &DownloadError{StatusCode: resp.StatusCode}
	}

	containerPath := filepath.Join(outputDir, name+".crx")
	archivePath := filepath.Join(outputDir, name+".zip")

	written, err := streamToFile(resp.Body, containerPath, retrievalID)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("persist container: %w", err)
	}
	logger.Info("container downloaded", "path", containerPath, "bytes", written)

	if err := crx.ConvertFile(containerPath, archivePath); err != nil {
		// The container file stays behind as evidence.
		logger.Error("container conversion failed", "path", containerPath, "error", err)
		return nil, err
	}
	logger.Info("archive written", "path", archivePath)

	return &Result{
		ContainerPath: containerPath,
		ArchivePath:   archivePath,
	}, nil
}

// streamToFile copies body to destPath through a uniquely named temp
// file in the same directory, then renames into place so a partial
// download never masquerades as a complete container.
func streamToFile(body io.Reader, destPath, retrievalID string) (int64, error) {
	tmpPath := destPath + "." + retrievalID + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, body)
	if err != nil {
		return 0, fmt.Errorf("copy response body: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return 0, fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return 0, fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return written, nil
}

// retrievalLogger stamps every log entry with the retrieval id and
// extension id.
type retrievalLogger struct {
	base      Logger
	id        string
	extension string
}

func (l retrievalLogger) with(keysAndValues []interface{}) []interface{} {
	return append([]interface{}{"retrieval_id", l.id, "extension_id", l.extension}, keysAndValues...)
}

func (l retrievalLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.base.Debug(msg, l.with(keysAndValues)...)
}

func (l retrievalLogger) Info(msg string, keysAndValues ...interface{}) {
	l.base.Info(msg, l.with(keysAndValues)...)
}

func (l retrievalLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.base.Warn(msg, l.with(keysAndValues)...)
}

func (l retrievalLogger) Error(msg string, keysAndValues ...interface{}) {
	l.base.Error(msg, l.with(keysAndValues)...)
}
