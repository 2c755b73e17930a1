// Package loader resolves input identifiers to HTML markup. An input may
// be raw markup, a local file path, or an http(s) URL. Binary document
// formats are converted to XHTML through an external Tika-compatible
// conversion service when one is available; availability is negotiated
// once at construction and never re-checked per call.
package loader

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/SerjaoM/txtai/internal/logger"
)

// Backend identifies the conversion capability chosen at construction.
type Backend string

const (
	// BackendRichParser converts binary formats through an external
	// document conversion service before extraction.
	BackendRichParser Backend = "rich"

	// BackendPlainFetch hands retrieved bytes directly to extraction.
	// Only HTML and plain text inputs convert usefully.
	BackendPlainFetch Backend = "plain"
)

// ErrConversionUnavailable is returned at construction when rich document
// conversion is required but the conversion service cannot be reached.
var ErrConversionUnavailable = errors.New("document conversion service unavailable")

// Config controls input resolution.
type Config struct {
	// ConversionURL is the base URL of a Tika-compatible conversion
	// service. Defaults to the TXTAI_TIKA environment variable, then
	// http://localhost:9998.
	ConversionURL string

	// DisableConversion skips service negotiation and forces plain
	// fetching.
	DisableConversion bool

	// RequireConversion makes construction fail with
	// ErrConversionUnavailable instead of degrading to plain fetching.
	RequireConversion bool

	// FetchMode selects the remote fetching strategy.
	FetchMode FetchMode

	// Headers are sent with every remote fetch.
	Headers map[string]string

	// UserAgent overrides the default request user agent.
	UserAgent string

	// Timeout bounds each fetch and conversion call.
	Timeout time.Duration

	// MaxContentSize truncates retrieved content to this many bytes.
	// Zero means unlimited.
	MaxContentSize int64
}

// DefaultConfig returns sensible loader defaults.
func DefaultConfig() Config {
	return Config{
		ConversionURL: defaultConversionURL(),
		FetchMode:     FetchModeStatic,
		Timeout:       30 * time.Second,
	}
}

func defaultConversionURL() string {
	if v := os.Getenv("TXTAI_TIKA"); v != "" {
		return v
	}
	return "http://localhost:9998"
}

// Loader resolves inputs to HTML markup.
type Loader struct {
	cfg       Config
	backend   Backend
	converter *ConversionClient
	fetcher   Fetcher
}

// New creates a Loader, negotiating the conversion backend once. When the
// conversion service does not answer a version probe the loader degrades
// to plain fetching, unless RequireConversion is set.
func New(cfg Config) (*Loader, error) {
	if cfg.ConversionURL == "" {
		cfg.ConversionURL = defaultConversionURL()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.FetchMode == "" {
		cfg.FetchMode = FetchModeStatic
	}

	fetcher, err := NewFetcher(cfg.FetchMode, FetcherConfig{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Headers:   cfg.Headers,
	})
	if err != nil {
		return nil, err
	}

	l := &Loader{
		cfg:     cfg,
		backend: BackendPlainFetch,
		fetcher: fetcher,
	}

	if !cfg.DisableConversion {
		converter := NewConversionClient(cfg.ConversionURL, cfg.Timeout)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()

		if err := converter.Ping(ctx); err != nil {
			if cfg.RequireConversion {
				return nil, fmt.Errorf("%w: %s: %v", ErrConversionUnavailable, cfg.ConversionURL, err)
			}
			logger.Debug("conversion service unavailable, using plain fetch",
				"url", cfg.ConversionURL, "error", err)
		} else {
			l.backend = BackendRichParser
			l.converter = converter
		}
	}

	logger.Debug("loader created", "backend", l.backend, "fetch_mode", cfg.FetchMode)
	return l, nil
}

// Backend returns the conversion backend negotiated at construction.
func (l *Loader) Backend() Backend {
	return l.backend
}

// Close releases fetcher resources.
func (l *Loader) Close() error {
	return l.fetcher.Close()
}

// Load resolves an input identifier to HTML markup. Inputs that are not a
// local path or URL are treated as raw markup and returned unchanged.
func (l *Loader) Load(ctx context.Context, input string) (string, error) {
	path, local, ok := resolve(input)
	if !ok {
		// Not an addressable resource, treat the input itself as data.
		return input, nil
	}

	data, err := l.retrieve(ctx, path, local)
	if err != nil {
		return "", err
	}

	if max := l.cfg.MaxContentSize; max > 0 && int64(len(data)) > max {
		logger.Debug("truncating content", "size", len(data), "max", max)
		data = data[:max]
	}

	if l.backend == BackendRichParser {
		return l.convert(ctx, data)
	}
	return string(data), nil
}

// convert routes retrieved bytes through the conversion service. Plain
// text and HTML bypass conversion.
func (l *Loader) convert(ctx context.Context, data []byte) (string, error) {
	mime := mimetype.Detect(data)
	if mime.Is("text/plain") || mime.Is("text/html") || mime.Is("application/xhtml+xml") {
		return string(data), nil
	}

	html, err := l.converter.Convert(ctx, data)
	if err != nil {
		return "", fmt.Errorf("converting document: %w", err)
	}
	return html, nil
}

// retrieve reads bytes from a local file or fetches them remotely.
func (l *Loader) retrieve(ctx context.Context, path string, local bool) ([]byte, error) {
	if local {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return data, nil
	}

	content, err := l.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return content, nil
}

// resolve checks whether an input names a local file or a web URL. The
// local flag reports a file that exists on disk; ok reports whether the
// input is addressable at all.
func resolve(input string) (path string, local, ok bool) {
	// file:// URLs address local paths.
	path = strings.TrimPrefix(input, "file://")

	if _, err := os.Stat(path); err == nil {
		return path, true, true
	}

	if u, err := url.Parse(path); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return path, false, true
	}

	return "", false, false
}
