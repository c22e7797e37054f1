// Package imagecache provides utilities for downloading and caching remote avatars.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avatint/avatint/internal/security"
	httputil "github.com/avatint/avatint/internal/util/http"
)

// CacheOptions configures avatar caching behavior.
type CacheOptions struct {
	// CacheDir is the directory where avatars will be cached.
	// If empty, defaults to ~/.cache/avatint/avatars
	CacheDir string

	// Filename is the filename to use for the cached avatar.
	// If empty, uses a hash of the URL + original extension.
	Filename string

	// AllowOverwrite determines if existing cached files can be overwritten.
	// Default: false (reuse existing cached files).
	AllowOverwrite bool

	// Fetch configures the underlying HTTP fetch (timeout, size cap, logger).
	Fetch httputil.FetchOptions
}

// DefaultCacheDir returns the default cache directory path.
func DefaultCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "avatint", "avatars"), nil
	}
	return filepath.Join(cacheDir, "avatint", "avatars"), nil
}

// generateFilename creates a deterministic filename from a URL.
// Uses SHA256 hash of URL + original file extension.
func generateFilename(url string) string {
	hash := sha256.Sum256([]byte(url))
	hashStr := fmt.Sprintf("%x", hash[:16])

	// Extract extension from URL (if present).
	ext := filepath.Ext(url)
	// Remove query parameters from extension.
	if idx := strings.IndexByte(ext, '?'); idx != -1 {
		ext = ext[:idx]
	}
	// Default to .png if no usable extension found.
	if ext == "" || len(ext) > 5 {
		ext = ".png"
	}

	return hashStr + ext
}

// DownloadAndCache downloads a remote avatar and saves it to the cache
// directory. Returns the local file path where the avatar was saved.
// An already-cached URL is served from disk without a network round
// trip unless AllowOverwrite is set.
func DownloadAndCache(ctx context.Context, url string, opts CacheOptions) (string, error) {
	if err := security.ValidateAvatarURL(url); err != nil {
		return "", err
	}

	cacheDir := opts.CacheDir
	if cacheDir == "" {
		defaultDir, err := DefaultCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		cacheDir = defaultDir
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	filename := opts.Filename
	if filename == "" {
		filename = generateFilename(url)
	}

	cachedPath := filepath.Join(cacheDir, filename)

	if !opts.AllowOverwrite {
		if _, err := os.Stat(cachedPath); err == nil {
			// File exists - return cached path.
			return cachedPath, nil
		}
	}

	data, err := httputil.Fetch(ctx, url, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to download avatar: %w", err)
	}

	if err := os.WriteFile(cachedPath, data, 0o644); err != nil { // #nosec G306 - Cache files need standard read permissions
		return "", fmt.Errorf("failed to write cached avatar: %w", err)
	}

	return cachedPath, nil
}
