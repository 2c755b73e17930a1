package markdown

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// elementName returns the tag name for element nodes and "" otherwise.
func elementName(n *html.Node) string {
	if n != nil && n.Type == html.ElementNode {
		return n.Data
	}
	return ""
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasClassToken reports whether the node's class attribute contains the
// given class name as a whole token.
func hasClassToken(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, token := range strings.Fields(attr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

// childNodes returns the node's element children plus its non-blank text
// children, in document order. Whitespace-only text nodes and comments are
// dropped. Text nodes have no children, so they yield nil.
func childNodes(n *html.Node) []*html.Node {
	if n.Type != html.ElementNode {
		return nil
	}
	var kids []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			kids = append(kids, c)
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				kids = append(kids, c)
			}
		}
	}
	return kids
}

// textContent flattens a node and all of its descendants to raw text.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}

// findAll returns every descendant element with the given tag name, in
// document order. The node itself is excluded.
func findAll(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(n)
	return found
}

// findCells returns the th and td descendants of a table row.
func findCells(row *html.Node) []*html.Node {
	var cells []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "th" || c.Data == "td") {
				cells = append(cells, c)
			}
			walk(c)
		}
	}
	walk(row)
	return cells
}

// trimLeftSpace strips leading Unicode whitespace.
func trimLeftSpace(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}
