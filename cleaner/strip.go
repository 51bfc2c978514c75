package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// removedTags are elements whose content never carries page meaning:
// executable/styling content plus the structural navigation chrome.
const removedTags = "script, style, noscript, template, nav, header, footer, aside, form, iframe"

// boilerplateMatcher catches navigation, sidebar, and menu containers that
// sites mark with classes or ids instead of semantic tags.
var boilerplateMatcher = cascadia.MustCompile(
	".nav, .navbar, .menu, .sidebar, .breadcrumb, .breadcrumbs, .footer, .header, .site-header, .site-footer, #nav, #navbar, #menu, #sidebar, #footer, #header",
)

// blockTags are elements that terminate a visual line. Their close emits a
// newline so the extracted text keeps the page's block structure instead of
// being reflowed to a fixed width.
var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "ul": true, "ol": true, "dl": true, "dt": true, "dd": true,
	"table": true, "tr": true, "blockquote": true, "pre": true,
	"figure": true, "figcaption": true, "br": true, "hr": true,
}

// Normalize converts an HTML document to plain text: boilerplate elements
// are removed, remaining visible text is emitted with block-level line
// breaks and no fixed-width re-wrapping. Unparseable input yields "".
func Normalize(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	doc.Find(removedTags).Remove()
	doc.FindMatcher(boilerplateMatcher).Remove()

	root := doc.Get(0)
	if root == nil {
		return ""
	}

	var sb strings.Builder
	collectText(root, &sb)
	return strings.TrimSpace(sb.String())
}

// collectText walks the node tree depth-first, appending trimmed text nodes
// separated by spaces and a newline after each block-level element.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			sb.WriteString(t)
			sb.WriteByte(' ')
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
	if n.Type == html.ElementNode && blockTags[n.Data] {
		sb.WriteByte('\n')
	}
}
