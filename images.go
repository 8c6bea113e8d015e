package sheet2pdf

import (
	"bytes"
	"context"
	"crypto/md5" // #nosec G501 -- used for filename uniqueness, not security
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	xdraw "golang.org/x/image/draw"
)

// downloadUserAgent is sent with image requests; some CDNs reject requests
// without a browser-looking agent.
const downloadUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// fetchCacheSize bounds the URL -> local path cache.
const fetchCacheSize = 256

// ImageFetcher downloads a product image to local storage.
type ImageFetcher interface {
	// Fetch returns the local path for the image at url. The label is used
	// for filename readability and diagnostics.
	Fetch(ctx context.Context, url, label string) (string, error)

	// Cleanup removes every downloaded file. Best-effort.
	Cleanup() error
}

// ImageOptimizer re-encodes a local image for document embedding.
type ImageOptimizer interface {
	Optimize(path string) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ ImageFetcher   = (*HTTPImageFetcher)(nil)
	_ ImageOptimizer = (*ScalingOptimizer)(nil)
)

// DownloadStats summarizes fetcher activity for end-of-run reporting.
type DownloadStats struct {
	Downloaded int
	TotalBytes int64
}

// HTTPImageFetcher downloads images over HTTP into a temp directory,
// de-duplicating by URL with an LRU cache.
type HTTPImageFetcher struct {
	client *http.Client
	cfg    ImageConfig
	dir    string
	cache  *lru.Cache[string, string]
	log    *slog.Logger

	mu    sync.Mutex
	stats DownloadStats
}

// NewHTTPImageFetcher creates a fetcher storing files under dir, which is
// created if absent. A nil logger falls back to slog.Default().
func NewHTTPImageFetcher(cfg ImageConfig, dir string, log *slog.Logger) (*HTTPImageFetcher, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating image temp dir: %w", err)
	}

	cache, err := lru.New[string, string](fetchCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating download cache: %w", err)
	}

	return &HTTPImageFetcher{
		client: &http.Client{Timeout: cfg.DownloadTimeout},
		cfg:    cfg,
		dir:    dir,
		cache:  cache,
		log:    log,
	}, nil
}

// Fetch downloads the image unless a previous fetch for the same URL is
// cached. The downloaded bytes must decode as an image and respect the
// configured size cap; violations return ErrImageDownload wrapping the
// specific cause.
func (f *HTTPImageFetcher) Fetch(ctx context.Context, rawURL, label string) (string, error) {
	if path, ok := f.cache.Get(rawURL); ok {
		return path, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageDownload, err)
	}
	req.Header.Set("User-Agent", downloadUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrImageDownload, resp.StatusCode)
	}
	if resp.ContentLength > f.cfg.MaxFileSize {
		return "", fmt.Errorf("%w: %w: %d bytes", ErrImageDownload, ErrImageTooLarge, resp.ContentLength)
	}

	// LimitReader catches servers that lie about (or omit) Content-Length.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrImageDownload, err)
	}
	if int64(len(data)) > f.cfg.MaxFileSize {
		return "", fmt.Errorf("%w: %w", ErrImageDownload, ErrImageTooLarge)
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrImageDownload, ErrNotAnImage)
	}

	path := filepath.Join(f.dir, imageFilename(rawURL, label))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("%w: writing file: %v", ErrImageDownload, err)
	}

	f.cache.Add(rawURL, path)
	f.mu.Lock()
	f.stats.Downloaded++
	f.stats.TotalBytes += int64(len(data))
	f.mu.Unlock()

	f.log.Debug("image downloaded",
		slog.String("label", label), slog.Int("bytes", len(data)))
	return path, nil
}

// Stats returns a snapshot of download counters.
func (f *HTTPImageFetcher) Stats() DownloadStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

// Cleanup removes every file in the fetcher's directory and resets the
// cache. Errors are aggregated; callers treat them as log-only.
func (f *HTTPImageFetcher) Cleanup() error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return fmt.Errorf("reading image temp dir: %w", err)
	}

	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(f.dir, entry.Name())); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	f.cache.Purge()
	return firstErr
}

// imageFilename builds a unique, readable filename from the URL hash, a
// sanitized label, and the URL's extension (default .jpg).
func imageFilename(rawURL, label string) string {
	hash := fmt.Sprintf("%x", md5.Sum([]byte(rawURL)))[:8] // #nosec G401

	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		}
		return -1
	}, label)
	if len(clean) > 20 {
		clean = clean[:20]
	}
	if clean == "" {
		clean = "produto"
	}

	ext := ".jpg"
	if u, err := url.Parse(rawURL); err == nil {
		if e := filepath.Ext(u.Path); e != "" {
			ext = e
		}
	}

	return clean + "_" + hash + ext
}

// ScalingOptimizer scales an image to fit the configured maximum dimensions
// (preserving aspect ratio, never upscaling) and re-encodes it as JPEG.
type ScalingOptimizer struct {
	cfg ImageConfig
}

// NewScalingOptimizer creates a ScalingOptimizer.
func NewScalingOptimizer(cfg ImageConfig) *ScalingOptimizer {
	return &ScalingOptimizer{cfg: cfg}
}

// Optimize decodes, scales, and re-encodes the image at path.
func (o *ScalingOptimizer) Optimize(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from our own temp dir
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	bounds := src.Bounds()
	width, height := fitDimensions(bounds.Dx(), bounds.Dy(), o.cfg.MaxWidth, o.cfg.MaxHeight)

	var out image.Image = src
	if width != bounds.Dx() || height != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: o.cfg.Quality}); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// fitDimensions shrinks (w, h) proportionally to fit within (maxW, maxH).
// Dimensions already within bounds are returned unchanged.
func fitDimensions(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	scaledW := int(float64(w) * scale)
	scaledH := int(float64(h) * scale)
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}
	return scaledW, scaledH
}
