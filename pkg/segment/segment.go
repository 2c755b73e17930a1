// Package segment tokenizes extracted text into sentences, lines,
// paragraphs or sections, with optional cleaning and length filtering.
// It is the stage applied after Markdown conversion: sections split on the
// section break marker, paragraphs on blank-line boundaries, lines on
// newlines.
package segment

import (
	"regexp"
	"strings"
)

// Config controls how text is segmented. At most one granularity applies,
// in priority order: Sentences, Lines, Paragraphs, Sections. With no
// granularity set, the input is cleaned and returned as a single segment.
type Config struct {
	Sentences  bool
	Lines      bool
	Paragraphs bool
	Sections   bool

	// MinLength drops cleaned segments shorter than this many bytes.
	// Only applies when cleaning is enabled.
	MinLength int

	// Join rejoins segments into a single space-separated string.
	Join bool

	// CleanText collapses runs of spaces and trims each segment.
	CleanText bool
}

// DefaultConfig returns the default segmentation settings: no
// tokenization, cleaning enabled.
func DefaultConfig() Config {
	return Config{CleanText: true}
}

// Segmenter splits text according to its configuration.
type Segmenter struct {
	cfg Config
}

// New creates a Segmenter with the given configuration.
func New(cfg Config) *Segmenter {
	return &Segmenter{cfg: cfg}
}

// paragraphSplit matches blank-line paragraph boundaries.
var paragraphSplit = regexp.MustCompile(`\n{2,}`)

// spaceRuns matches runs of two or more spaces.
var spaceRuns = regexp.MustCompile(` +`)

// Split tokenizes text into segments. Empty segments are removed, and
// Join collapses the result back into a single space-joined segment.
// Without a granularity setting the result holds a single cleaned
// segment, which may be absent entirely when filtered out by MinLength.
func (s *Segmenter) Split(text string) []string {
	var content []string

	switch {
	case s.cfg.Sentences:
		content = splitSentences(text)
	case s.cfg.Lines:
		content = strings.Split(text, "\n")
	case s.cfg.Paragraphs:
		content = paragraphSplit.Split(text, -1)
	case s.cfg.Sections:
		sep := "\f"
		if !strings.Contains(text, sep) {
			sep = "\n\n\n"
		}
		content = strings.Split(text, sep)
	default:
		if cleaned, ok := s.clean(text); ok {
			return []string{cleaned}
		}
		return nil
	}

	segments := make([]string, 0, len(content))
	for _, item := range content {
		if cleaned, ok := s.clean(item); ok && cleaned != "" {
			segments = append(segments, cleaned)
		}
	}

	if s.cfg.Join && len(segments) > 1 {
		return []string{strings.Join(segments, " ")}
	}
	return segments
}

// Text segments the input and joins the result back into a single string.
// Granular segments are joined with a single space; without a granularity
// setting this is simply the cleaned input.
func (s *Segmenter) Text(text string) string {
	segments := s.Split(text)
	return strings.Join(segments, " ")
}

// Join reports whether segments should be rejoined into one string.
func (s *Segmenter) Join() bool {
	return s.cfg.Join
}

// Granular reports whether a tokenization granularity is configured.
func (s *Segmenter) Granular() bool {
	return s.cfg.Sentences || s.cfg.Lines || s.cfg.Paragraphs || s.cfg.Sections
}

// clean applies whitespace normalization and length filtering to a
// segment. The boolean reports whether the segment survives filtering.
func (s *Segmenter) clean(text string) (string, bool) {
	if !s.cfg.CleanText {
		return text, true
	}

	text = spaceRuns.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	if s.cfg.MinLength > 0 && len(text) < s.cfg.MinLength {
		return "", false
	}
	return text, true
}
