// Package markdown converts HTML documents into Markdown-formatted text.
// Headings, blockquotes, lists, code blocks and tables are rewritten with
// Markdown structure, inline emphasis and links are preserved, and
// presentation noise (scripts, styles, navigation chrome) is discarded.
// When a document carries an <article> or <main> container, conversion is
// restricted to it and boilerplate text is suppressed.
package markdown

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// SectionBreak is the marker inserted between sections when section
// parsing is enabled. Downstream consumers split output on this character.
const SectionBreak = "\f"

// Config controls output spacing. It is fixed at construction.
type Config struct {
	// Paragraphs separates paragraph-level blocks with a blank line
	// instead of a single newline.
	Paragraphs bool

	// Sections emits a section break marker at page/section boundaries
	// instead of plain spacing.
	Sections bool
}

// Converter transforms HTML into Markdown-formatted text.
//
// A Converter is stateless across calls and safe for concurrent use;
// each Convert call parses its own private tree.
type Converter struct {
	paragraphs bool
	sections   bool
}

// New creates a Converter with the given configuration.
func New(cfg Config) *Converter {
	return &Converter{
		paragraphs: cfg.Paragraphs,
		sections:   cfg.Sections,
	}
}

// Convert transforms input HTML into Markdown-formatted text.
//
// Convert never fails: malformed or tagless input degrades to flat text
// extraction instead of returning an error.
func (c *Converter) Convert(input string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return c.flatText(input)
	}

	// Ignore script and style content entirely. This mutation happens
	// before any traversal; later steps assume these subtrees are gone.
	doc.Find("script, style").Remove()

	// Prefer semantic content containers over the document body.
	scope := ""
	for _, tag := range []string{"article", "main"} {
		if doc.Find(tag).Length() > 0 {
			scope = tag
			break
		}
	}
	article := scope != ""

	// The HTML parser synthesizes a <body> around tagless input, so the
	// body scope only applies when the source markup declared one.
	if !article && !hasExplicitTag(input, "body") {
		return c.flatText(docText(doc))
	}

	selector := "body"
	if article {
		selector = scope
	}

	var nodes []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		// Skip article sections without at least one paragraph. These
		// are typically boilerplate wrappers, not content.
		if article && s.Find("p").Length() == 0 {
			return
		}
		nodes = append(nodes, c.convert(s.Nodes[0], article))
	})

	if len(nodes) == 0 {
		return c.flatText(docText(doc))
	}

	return strings.Join(append(c.metadata(doc), nodes...), "\n")
}

// metadata builds the title/description preamble. When either field is
// present, a separator follows the preamble before the first content node.
func (c *Converter) metadata(doc *goquery.Document) []string {
	var parts []string

	if title := doc.Find("title").First(); title.Length() > 0 {
		if text := title.Text(); text != "" {
			parts = append(parts, "**"+strings.TrimSpace(text)+"**")
		}
	}

	if meta := doc.Find(`meta[name="description"]`).First(); meta.Length() > 0 {
		if content, _ := meta.Attr("content"); content != "" {
			parts = append(parts, "\n*"+strings.TrimSpace(content)+"*")
		}
	}

	if len(parts) > 0 {
		if c.sections {
			parts = append(parts, SectionBreak)
		} else {
			parts = append(parts, "\n\n")
		}
	}

	return parts
}

// headingLine matches Markdown-style heading lines in flat text.
var headingLine = regexp.MustCompile(`^#+ `)

// flatText is the fallback handler used when no convertible nodes exist.
// The source text is returned line by line; heading-shaped lines receive a
// section break marker when section parsing is enabled.
func (c *Converter) flatText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		if c.sections && headingLine.MatchString(line) {
			out[i] = SectionBreak + line
		} else {
			out[i] = line
		}
	}
	return strings.Join(out, "\n")
}

// docText extracts the full text content of a parsed document.
func docText(doc *goquery.Document) string {
	return doc.Text()
}

// hasExplicitTag reports whether the source markup contains a start tag
// with the given name, as opposed to one synthesized by the parser.
func hasExplicitTag(input, name string) bool {
	z := html.NewTokenizer(strings.NewReader(input))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			tag, _ := z.TagName()
			if string(tag) == name {
				return true
			}
		}
	}
}
