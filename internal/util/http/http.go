// Package http provides HTTP utilities for fetching remote avatars.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/avatint/avatint/internal/version"
)

const (
	// UserAgentName is the application name used in the User-Agent header.
	UserAgentName = "avatint"

	// DefaultTimeout is the default HTTP request timeout. Avatar hosts
	// are expected to answer quickly; a slow host should not stall an
	// extraction.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxBytes caps the payload size accepted from a remote
	// host. Avatars larger than this are rejected before decoding.
	DefaultMaxBytes = 10 << 20 // 10 MiB
)

// FetchOptions configures HTTP fetch behavior.
type FetchOptions struct {
	// Timeout specifies the HTTP request timeout.
	// If zero, DefaultTimeout is used.
	Timeout time.Duration

	// MaxBytes caps the response size in bytes.
	// If zero, DefaultMaxBytes is used.
	MaxBytes int64

	// Headers specifies additional HTTP headers to send with the request.
	Headers map[string]string

	// Logger receives debug logging for the fetch.
	// If nil, logging is discarded.
	Logger hclog.Logger
}

// Fetch retrieves content from a URL with context, timeout, and payload
// size limits. It automatically sets the User-Agent header and handles
// common HTTP errors.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	client := &http.Client{
		Timeout: timeout,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set User-Agent with dynamic version
	userAgent := fmt.Sprintf("%s/%s", UserAgentName, version.Version)
	req.Header.Set("User-Agent", userAgent)

	// Set additional headers
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	logger.Debug("fetching avatar", "url", url, "timeout", timeout)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	if resp.ContentLength > maxBytes {
		return nil, fmt.Errorf("response too large: %d bytes (maximum: %d)", resp.ContentLength, maxBytes)
	}

	// Read one byte past the cap so oversized chunked responses are
	// detected too.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("response too large: exceeds %d bytes", maxBytes)
	}

	logger.Debug("fetched avatar", "url", url, "bytes", len(data))

	return data, nil
}
