package markdown

// elementKind is a closed classification of the element tags the converter
// treats specially. Exhaustive switching on it keeps the dispatch priority
// explicit instead of falling through chained tag-name comparisons.
type elementKind int

const (
	// kindGeneric covers every element without a dedicated rule.
	kindGeneric elementKind = iota

	// kindHeading is h1..h6.
	kindHeading

	// kindQuote is blockquote and q.
	kindQuote

	// kindList is ul and ol.
	kindList

	// kindCode is code and pre.
	kindCode

	// kindTable is table.
	kindTable

	// kindAside is aside, skipped unconditionally.
	kindAside

	// kindChrome is header and footer, skipped outside article mode.
	kindChrome
)

// classify maps an element tag name to its dispatch kind.
func classify(tag string) elementKind {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return kindHeading
	case "blockquote", "q":
		return kindQuote
	case "ul", "ol":
		return kindList
	case "code", "pre":
		return kindCode
	case "table":
		return kindTable
	case "aside":
		return kindAside
	case "header", "footer":
		return kindChrome
	default:
		return kindGeneric
	}
}

// isHeading reports whether tag is a heading element name.
func isHeading(tag string) bool {
	return classify(tag) == kindHeading
}

// containerTags are elements whose children are always joined by recursive
// conversion rather than flattened to inline text.
var containerTags = map[string]bool{
	"div":     true,
	"body":    true,
	"article": true,
}

// articleTextTags is the allow-set of elements whose text survives article
// filtering. Headings are allowed separately.
var articleTextTags = map[string]bool{
	"p":      true,
	"th":     true,
	"td":     true,
	"li":     true,
	"a":      true,
	"b":      true,
	"strong": true,
	"i":      true,
	"em":     true,
}
