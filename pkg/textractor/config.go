package textractor

import (
	"time"

	"github.com/SerjaoM/txtai/pkg/loader"
)

// Config holds the full pipeline configuration.
type Config struct {
	// Tokenization granularity, in priority order.
	Sentences  bool
	Lines      bool
	Paragraphs bool
	Sections   bool

	// MinLength drops cleaned segments shorter than this many bytes.
	MinLength int `validate:"gte=0"`

	// Join rejoins tokenized segments into a single string.
	Join bool

	// CleanText collapses runs of spaces and trims segments.
	CleanText bool

	// Loader controls input resolution and document conversion.
	Loader loader.Config `validate:"required"`
}

// DefaultConfig returns the default pipeline configuration: no
// tokenization, cleaning enabled, static fetching, conversion negotiated.
func DefaultConfig() Config {
	return Config{
		CleanText: true,
		Loader:    loader.DefaultConfig(),
	}
}

// Option configures a Textractor.
type Option func(*Config)

// WithSentences tokenizes output into sentences.
func WithSentences() Option {
	return func(c *Config) { c.Sentences = true }
}

// WithLines tokenizes output into lines.
func WithLines() Option {
	return func(c *Config) { c.Lines = true }
}

// WithParagraphs tokenizes output into paragraphs and separates
// paragraph-level blocks with blank lines during conversion.
func WithParagraphs() Option {
	return func(c *Config) { c.Paragraphs = true }
}

// WithSections tokenizes output into sections and emits section break
// markers at page/section boundaries during conversion.
func WithSections() Option {
	return func(c *Config) { c.Sections = true }
}

// WithMinLength drops segments shorter than n bytes after cleaning.
func WithMinLength(n int) Option {
	return func(c *Config) { c.MinLength = n }
}

// WithJoin rejoins tokenized segments into a single string.
func WithJoin() Option {
	return func(c *Config) { c.Join = true }
}

// WithCleanText enables or disables whitespace cleaning.
func WithCleanText(enabled bool) Option {
	return func(c *Config) { c.CleanText = enabled }
}

// WithHeaders sets HTTP headers sent with remote fetches.
func WithHeaders(headers map[string]string) Option {
	return func(c *Config) { c.Loader.Headers = headers }
}

// WithTimeout bounds each fetch and conversion call.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Loader.Timeout = d }
}

// WithFetchMode selects the remote fetching strategy.
func WithFetchMode(mode loader.FetchMode) Option {
	return func(c *Config) { c.Loader.FetchMode = mode }
}

// WithConversionURL points the loader at a document conversion service.
func WithConversionURL(url string) Option {
	return func(c *Config) { c.Loader.ConversionURL = url }
}

// WithoutConversion forces plain fetching without service negotiation.
func WithoutConversion() Option {
	return func(c *Config) { c.Loader.DisableConversion = true }
}

// WithRequireConversion makes construction fail when the conversion
// service is unreachable.
func WithRequireConversion() Option {
	return func(c *Config) { c.Loader.RequireConversion = true }
}

// WithMaxContentSize truncates retrieved content to n bytes.
func WithMaxContentSize(n int64) Option {
	return func(c *Config) { c.Loader.MaxContentSize = n }
}
