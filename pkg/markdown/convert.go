package markdown

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// convert transforms a single node into Markdown text. Dispatch follows a
// fixed priority: heading, blockquote, list, code, table, skipped chrome,
// then container/inline handling. A page break marker is appended after
// whichever rule produced the text when the node carries a "page" class
// and section parsing is enabled.
func (c *Converter) convert(n *html.Node, article bool) string {
	text := c.dispatch(n, article)

	if c.sections && hasClassToken(n, "page") {
		text += SectionBreak
	}

	return text
}

func (c *Converter) dispatch(n *html.Node, article bool) string {
	if n.Type == html.TextNode {
		return c.inlineText(n, article)
	}

	switch classify(n.Data) {
	case kindHeading:
		return c.heading(n, article)
	case kindQuote:
		return c.blockquote(n)
	case kindList:
		return c.list(n, article)
	case kindCode:
		return c.codeBlock(n)
	case kindTable:
		return c.table(n, article)
	case kindAside:
		return ""
	case kindChrome:
		// Navigation headers and footers are dropped when converting a
		// plain document. Article filtering handles them on its own.
		if !article {
			return ""
		}
	case kindGeneric:
	}

	kids := childNodes(n)

	if isContainer(n, kids) {
		texts := make([]string, 0, len(kids))
		for _, kid := range kids {
			text := c.convert(kid, article)
			// Article mode drops empty results as noise; plain
			// conversion keeps them as literal blank lines.
			if text != "" || !article {
				texts = append(texts, text)
			}
		}
		return strings.Join(texts, "\n")
	}

	return c.inlineText(n, article)
}

// isContainer reports whether a node's children should be converted
// recursively. A container is a div, body or article element, or any
// element whose children include no raw text.
func isContainer(n *html.Node, kids []*html.Node) bool {
	if len(kids) == 0 {
		return false
	}
	if containerTags[elementName(n)] {
		return true
	}
	for _, kid := range kids {
		if kid.Type == html.TextNode {
			return false
		}
	}
	return true
}

// inlineText flattens a node and its children to text, applying emphasis
// and link formatting. Bare text nodes are trimmed; tag-bearing nodes with
// content keep their internal whitespace verbatim.
func (c *Converter) inlineText(n *html.Node, article bool) string {
	items := childNodes(n)
	if len(items) == 0 {
		items = []*html.Node{n}
	}

	var b strings.Builder
	for _, item := range items {
		// Text children take their formatting from the node itself.
		target := n
		if item.Type == html.ElementNode {
			target = item
		}
		text := textContent(item)

		if strings.TrimSpace(text) != "" {
			switch elementName(target) {
			case "b", "strong":
				text = "**" + strings.TrimSpace(text) + "** "
			case "i", "em":
				text = "*" + strings.TrimSpace(text) + "* "
			case "a":
				text = "[" + strings.TrimSpace(text) + "](" + attr(target, "href") + ") "
			}
		}

		b.WriteString(text)
	}

	text := b.String()

	if article {
		text = c.articleText(n, text)
	}

	if elementName(n) == "" || text == "" {
		text = strings.TrimSpace(text)
	}

	return text
}

// articleText filters text through article parsing rules. Text survives
// only on content-bearing elements, and never on link nodes.
func (c *Converter) articleText(n *html.Node, text string) string {
	name := elementName(n)
	if !articleTextTags[name] && !isHeading(name) {
		return ""
	}
	if c.isLinkNode(n) {
		return ""
	}
	if text == "" {
		return ""
	}

	// Converted PDFs mark paragraph breaks with a non-breaking space
	// before the newline.
	text = strings.ReplaceAll(text, "\u00a0\n", "\n\n")

	if name == "p" {
		if c.paragraphs {
			text = strings.TrimSpace(text) + "\n\n"
		} else {
			text = strings.TrimSpace(text) + "\n"
		}
	}

	return text
}

// isLinkNode reports whether a node is an anchor element or is nested
// inside one. Links in table cells are exempt so that tabular content
// renders normally even when linked.
func (c *Converter) isLinkNode(n *html.Node) bool {
	link := false
	for p := n; p != nil; p = p.Parent {
		if elementName(p) == "a" {
			link = true
			break
		}
	}
	if !link {
		return false
	}

	switch elementName(n.Parent) {
	case "th", "td":
		return false
	}
	return true
}

// heading renders h1..h6 as a Markdown heading. The heading is preceded by
// a section break in section mode, else a newline. Blank headings produce
// no output.
func (c *Converter) heading(n *html.Node, article bool) string {
	level, err := strconv.Atoi(n.Data[1:])
	if err != nil || level < 1 || level > 6 {
		level = 1
	}

	text := c.inlineText(n, article)
	if strings.TrimSpace(text) == "" {
		return ""
	}

	prefix := "\n"
	if c.sections {
		prefix = SectionBreak
	}

	return prefix + strings.Repeat("#", level) + " " + trimLeftSpace(text)
}

// blockquote renders blockquote and q elements with "> " line prefixes.
func (c *Converter) blockquote(n *html.Node) string {
	lines := strings.Split(strings.TrimSpace(textContent(n)), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}

	text := strings.Join(lines, "\n")
	if c.paragraphs {
		return text + "\n\n"
	}
	return text + "\n"
}

// list renders ul/ol elements as Markdown list items, one line per
// non-empty item. Empty items contribute no line and no number.
func (c *Converter) list(n *html.Node, article bool) string {
	ordered := n.Data == "ol"

	var elements []string
	for _, item := range findAll(n, "li") {
		text := c.convert(item, article)
		if text == "" {
			continue
		}

		prefix := "-"
		if ordered {
			prefix = strconv.Itoa(len(elements)+1) + "."
		}
		elements = append(elements, prefix+" "+text)
	}

	return strings.Join(elements, "\n")
}

// codeBlock renders code and pre elements as fenced code blocks.
func (c *Converter) codeBlock(n *html.Node) string {
	text := "```\n" + strings.TrimSpace(textContent(n)) + "\n```"
	if c.paragraphs {
		return text + "\n\n"
	}
	return text + "\n"
}

// table renders a table as Markdown rows. With more than one row, a
// header separator is inserted once, immediately after the first row.
func (c *Converter) table(n *html.Node, article bool) string {
	rows := findAll(n, "tr")

	var elements []string
	header := false
	for _, row := range rows {
		cells := findCells(row)

		texts := make([]string, len(cells))
		for i, cell := range cells {
			texts[i] = c.convert(cell, article)
		}
		elements = append(elements, "|"+strings.Join(texts, "|")+"|")

		if !header && len(rows) > 1 {
			elements = append(elements, strings.Repeat("|---", len(cells))+"|")
			header = true
		}
	}

	return strings.Join(elements, "\n")
}
