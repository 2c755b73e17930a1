// Package textractor extracts normalized, Markdown-formatted text from
// documents. It wires together input loading (local files, URLs or raw
// markup, with optional rich document conversion), HTML to Markdown
// transformation, and segmentation of the result into sentences, lines,
// paragraphs or sections.
package textractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SerjaoM/txtai/internal/logger"
	"github.com/SerjaoM/txtai/pkg/loader"
	"github.com/SerjaoM/txtai/pkg/markdown"
	"github.com/SerjaoM/txtai/pkg/segment"
)

// Textractor is the top-level extraction pipeline.
type Textractor struct {
	loader    *loader.Loader
	converter *markdown.Converter
	segmenter *segment.Segmenter
	cfg       Config
}

// New creates a Textractor. Construction fails when the configuration is
// invalid or when a required conversion backend is unavailable; extraction
// itself never fails on malformed markup.
func New(opts ...Option) (*Textractor, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ld, err := loader.New(cfg.Loader)
	if err != nil {
		return nil, err
	}

	t := &Textractor{
		loader: ld,
		converter: markdown.New(markdown.Config{
			Paragraphs: cfg.Paragraphs,
			Sections:   cfg.Sections,
		}),
		segmenter: segment.New(segment.Config{
			Sentences:  cfg.Sentences,
			Lines:      cfg.Lines,
			Paragraphs: cfg.Paragraphs,
			Sections:   cfg.Sections,
			MinLength:  cfg.MinLength,
			Join:       cfg.Join,
			CleanText:  cfg.CleanText,
		}),
		cfg: cfg,
	}

	logger.Debug("textractor created", "backend", ld.Backend())
	return t, nil
}

// Backend returns the conversion backend negotiated at construction.
func (t *Textractor) Backend() loader.Backend {
	return t.loader.Backend()
}

// Close releases loader resources.
func (t *Textractor) Close() error {
	return t.loader.Close()
}

// Segments extracts text from input and returns it tokenized per the
// configured granularity. Without a granularity setting the result holds
// at most one segment.
func (t *Textractor) Segments(ctx context.Context, input string) ([]string, error) {
	html, err := t.loader.Load(ctx, input)
	if err != nil {
		return nil, err
	}

	text := t.converter.Convert(html)
	return t.segmenter.Split(text), nil
}

// Text extracts text from input as a single string. When a granularity is
// configured, segments are joined with a single space.
func (t *Textractor) Text(ctx context.Context, input string) (string, error) {
	segments, err := t.Segments(ctx, input)
	if err != nil {
		return "", err
	}
	return strings.Join(segments, " "), nil
}
