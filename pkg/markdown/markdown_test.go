package markdown

import (
	"strings"
	"testing"
)

// wrap embeds a snippet in a full document so conversion runs through the
// body scope instead of the flat text fallback.
func wrap(snippet string) string {
	return "<html><body>" + snippet + "</body></html>"
}

func TestConvert_Headings(t *testing.T) {
	c := New(Config{})

	if got := c.Convert(wrap("<h1>This is a test</h1>")); got != "\n# This is a test" {
		t.Errorf("h1 = %q", got)
	}

	if got := c.Convert(wrap("<h6>This is a test</h6>")); got != "\n###### This is a test" {
		t.Errorf("h6 = %q", got)
	}
}

func TestConvert_Blockquote(t *testing.T) {
	c := New(Config{})

	if got := c.Convert(wrap("<blockquote>This is a test</blockquote>")); got != "> This is a test\n" {
		t.Errorf("blockquote = %q", got)
	}
}

func TestConvert_Lists(t *testing.T) {
	c := New(Config{})

	if got := c.Convert(wrap("<ul><li>Test1</li><li>Test2</li></ul>")); got != "- Test1\n- Test2" {
		t.Errorf("ul = %q", got)
	}

	if got := c.Convert(wrap("<ol><li>Test1</li><li>Test2</li></ol>")); got != "1. Test1\n2. Test2" {
		t.Errorf("ol = %q", got)
	}
}

func TestConvert_OrderedList_SkipsEmptyItems(t *testing.T) {
	c := New(Config{})

	// Empty items contribute no line and no number, so numbering stays
	// consecutive.
	got := c.Convert(wrap("<ol><li>Test1</li><li></li><li>Test3</li></ol>"))
	if got != "1. Test1\n2. Test3" {
		t.Errorf("ol with empty item = %q", got)
	}
}

func TestConvert_Code(t *testing.T) {
	c := New(Config{})

	for _, tag := range []string{"code", "pre"} {
		got := c.Convert(wrap("<" + tag + ">This is a test</" + tag + ">"))
		if got != "```\nThis is a test\n```\n" {
			t.Errorf("%s = %q", tag, got)
		}
	}
}

func TestConvert_Table(t *testing.T) {
	c := New(Config{})

	got := c.Convert(wrap("<table><tr><th>Header1</th><th>Header2</th></tr><tr><td>Test1</td><td>Test2</td></tr></table>"))
	if got != "|Header1|Header2|\n|---|---|\n|Test1|Test2|" {
		t.Errorf("table = %q", got)
	}
}

func TestConvert_Table_SingleRowNoSeparator(t *testing.T) {
	c := New(Config{})

	got := c.Convert(wrap("<table><tr><td>Only</td></tr></table>"))
	if got != "|Only|" {
		t.Errorf("single row table = %q", got)
	}
}

func TestConvert_Aside_Skipped(t *testing.T) {
	c := New(Config{})

	if got := c.Convert(wrap("<aside>This is a test</aside>")); got != "" {
		t.Errorf("aside = %q", got)
	}
}

func TestConvert_ChromeSkippedOutsideArticle(t *testing.T) {
	c := New(Config{})

	got := c.Convert(wrap("<header>Nav</header><p>Text</p><footer>Legal</footer>"))
	if got != "\nText\n" {
		t.Errorf("chrome = %q", got)
	}
}

func TestConvert_TextFormatting(t *testing.T) {
	c := New(Config{})

	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{"plain", "<p>This is a test</p>", "This is a test"},
		{"bold", "<p>This is a <b>test</b></p>", "This is a **test** "},
		{"strong", "<p>This is a <strong>test</strong></p>", "This is a **test** "},
		{"italic", "<p>This is a <i>test</i></p>", "This is a *test* "},
		{"emphasis", "<p>This is a <em>test</em></p>", "This is a *test* "},
		{"link", "<p>This is a <a href='link'>test</a></p>", "This is a [test](link) "},
		{"nested collapses to outer strong", "<p>This is a <strong><em>test</em></strong></p>", "This is a **test** "},
		{"nested collapses to outer em", "<p>This is a <em><strong>test</strong></em></p>", "This is a *test* "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Convert(wrap(tt.html)); got != tt.expected {
				t.Errorf("Convert(%q) = %q, want %q", tt.html, got, tt.expected)
			}
		})
	}
}

func TestConvert_EmptyHeadingDropped(t *testing.T) {
	c := New(Config{})

	got := c.Convert(wrap("<h1>   </h1><p>T</p>"))
	if got != "\nT" {
		t.Errorf("empty heading = %q", got)
	}
}

func TestConvert_Metadata(t *testing.T) {
	c := New(Config{})

	input := `<html><head><title>Title</title><meta name="description" content="Desc"></head><body><p>Text</p></body></html>`
	got := c.Convert(input)
	if got != "**Title**\n\n*Desc*\n\n\n\nText" {
		t.Errorf("metadata = %q", got)
	}
}

func TestConvert_Metadata_SectionSeparator(t *testing.T) {
	c := New(Config{Sections: true})

	input := `<html><head><title>Title</title></head><body><p>Text</p></body></html>`
	got := c.Convert(input)
	if got != "**Title**\n\f\nText" {
		t.Errorf("metadata = %q", got)
	}
}

func TestConvert_FallbackWithoutBody(t *testing.T) {
	c := New(Config{})

	// The parser synthesizes a body element, but extraction only uses it
	// when the source markup declared one.
	if got := c.Convert("<h1>This is a test</h1>"); got != "This is a test" {
		t.Errorf("no body = %q", got)
	}
}

func TestConvert_FallbackPlainText(t *testing.T) {
	c := New(Config{})

	if got := c.Convert("just some text"); got != "just some text" {
		t.Errorf("plain text = %q", got)
	}
}

func TestConvert_FallbackMarkdownSections(t *testing.T) {
	c := New(Config{Sections: true})

	got := c.Convert("# Heading 1\nText1\n\n# Heading 2\nText2\n")
	if got != "\f# Heading 1\nText1\n\n\f# Heading 2\nText2\n" {
		t.Errorf("markdown sections = %q", got)
	}
}

func TestConvert_ScriptAndStyleIgnored(t *testing.T) {
	c := New(Config{})

	got := c.Convert(wrap("<script>var x = 1;</script><style>p {}</style><p>Text</p>"))
	if strings.Contains(got, "var x") || strings.Contains(got, "p {}") {
		t.Errorf("script/style leaked: %q", got)
	}
	if !strings.Contains(got, "Text") {
		t.Errorf("content missing: %q", got)
	}
}

func TestConvert_PageBreaks(t *testing.T) {
	c := New(Config{Sections: true})

	got := c.Convert(wrap(`<div class="page"><p>First</p></div><div class="page"><p>Second</p></div>`))
	if got != "First\f\nSecond\f" {
		t.Errorf("page breaks = %q", got)
	}
}

func TestConvert_PageBreaks_DisabledWithoutSections(t *testing.T) {
	c := New(Config{})

	got := c.Convert(wrap(`<div class="page"><p>First</p></div>`))
	if got != "First" {
		t.Errorf("page breaks without sections = %q", got)
	}
}

func TestConvert_PageBreakOnHeading(t *testing.T) {
	c := New(Config{Sections: true})

	got := c.Convert(wrap(`<h1 class="page">Title</h1><p>Text</p>`))
	if got != "\f# Title\f\nText" {
		t.Errorf("heading page break = %q", got)
	}
}

func TestConvert_Article(t *testing.T) {
	c := New(Config{})

	input := wrap(`<article><header>Nav stuff</header><p>First paragraph.</p><a href="/x">Skip me</a><h2>Section</h2><p>Second paragraph.</p></article>`)
	got := c.Convert(input)
	if got != "First paragraph.\n\n\n## Section\nSecond paragraph.\n" {
		t.Errorf("article = %q", got)
	}
}

func TestConvert_Article_LinkInTableCellKept(t *testing.T) {
	c := New(Config{})

	input := wrap(`<article><p>Intro</p><table><tr><td><a href="/x">Link</a></td></tr></table></article>`)
	got := c.Convert(input)
	if !strings.Contains(got, "[Link](/x)") {
		t.Errorf("table cell link lost: %q", got)
	}
}

func TestConvert_Article_WithoutParagraphFallsBack(t *testing.T) {
	c := New(Config{})

	got := c.Convert(wrap("<article><span>no paragraphs</span></article>"))
	if got != "no paragraphs" {
		t.Errorf("article without p = %q", got)
	}
}

func TestConvert_Article_ParagraphSpacing(t *testing.T) {
	c := New(Config{Paragraphs: true})

	got := c.Convert(wrap("<article><p>First one.</p><p>Second one.</p></article>"))
	if got != "First one.\n\n\nSecond one.\n\n" {
		t.Errorf("paragraph spacing = %q", got)
	}
}

func TestConvert_Main_ScopesExtraction(t *testing.T) {
	c := New(Config{})

	input := wrap(`<div>outside</div><main><p>inside</p></main>`)
	got := c.Convert(input)
	if strings.Contains(got, "outside") {
		t.Errorf("content outside main leaked: %q", got)
	}
	if !strings.Contains(got, "inside") {
		t.Errorf("main content missing: %q", got)
	}
}

func TestConvert_EmptyInput(t *testing.T) {
	c := New(Config{})

	if got := c.Convert(""); got != "" {
		t.Errorf("empty input = %q", got)
	}
}

func TestHasExplicitTag(t *testing.T) {
	tests := []struct {
		input    string
		tag      string
		expected bool
	}{
		{"<html><body><p>x</p></body></html>", "body", true},
		{"<p>x</p>", "body", false},
		{"plain text", "body", false},
		{"# Heading\nText", "body", false},
		{"<BODY>x</BODY>", "body", true},
	}

	for _, tt := range tests {
		if got := hasExplicitTag(tt.input, tt.tag); got != tt.expected {
			t.Errorf("hasExplicitTag(%q, %q) = %v, want %v", tt.input, tt.tag, got, tt.expected)
		}
	}
}

func TestConvert_ConcurrentUse(t *testing.T) {
	c := New(Config{})
	input := wrap("<p>This is a test</p>")

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				if got := c.Convert(input); got != "This is a test" {
					t.Errorf("concurrent Convert = %q", got)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
