package fetch

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// strippedTags are removed wholesale before text extraction.
var strippedTags = map[string]bool{
	"script": true, "style": true, "nav": true, "header": true, "footer": true,
	"noscript": true, "iframe": true,
}

// strippedClassHints mark navigation-like regions by class or id.
var strippedClassHints = []string{"nav", "menu", "sidebar", "comments", "ad", "advertisement"}

// mainSelectors name the elements that usually hold the main content, in
// preference order. Entries starting with "#" match by id, "." by class.
var mainSelectors = []string{"main", "article", ".content", ".main-content", "#content", "#main"}

var whitespaceRun = regexp.MustCompile(`\s+`)

// extractText parses an HTML document and returns its title and the
// whitespace-normalized text of its main content region, capped at
// maxContentLen characters.
func extractText(doc []byte) (title, content string, err error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return "", "", err
	}

	title = findTitle(root)

	// Try the common main-content containers first, fall back to body.
	var contentNode *html.Node
	for _, sel := range mainSelectors {
		if n := findSelector(root, sel); n != nil {
			contentNode = n
			break
		}
	}
	if contentNode == nil {
		contentNode = findElement(root, "body")
	}
	if contentNode == nil {
		contentNode = root
	}

	var b strings.Builder
	collectText(contentNode, &b)

	content = strings.TrimSpace(whitespaceRun.ReplaceAllString(b.String(), " "))
	if len(content) > maxContentLen {
		content = content[:maxContentLen]
	}
	return title, content, nil
}

func findTitle(root *html.Node) string {
	if n := findElement(root, "title"); n != nil {
		if t := strings.TrimSpace(nodeText(n)); t != "" {
			return t
		}
	}
	if n := findElement(root, "h1"); n != nil {
		return strings.TrimSpace(nodeText(n))
	}
	return ""
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findSelector(n *html.Node, sel string) *html.Node {
	switch {
	case strings.HasPrefix(sel, "#"):
		return findByAttr(n, "id", sel[1:])
	case strings.HasPrefix(sel, "."):
		return findByAttr(n, "class", sel[1:])
	default:
		return findElement(n, sel)
	}
}

func findByAttr(n *html.Node, attr, value string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key != attr {
				continue
			}
			if attr == "class" {
				for _, cls := range strings.Fields(a.Val) {
					if cls == value {
						return n
					}
				}
			} else if a.Val == value {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByAttr(c, attr, value); found != nil {
			return found
		}
	}
	return nil
}

// collectText walks the subtree appending text nodes, skipping stripped tags
// and navigation-like regions.
func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode {
		if strippedTags[n.Data] || hasStrippedHint(n) {
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func hasStrippedHint(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key != "class" && a.Key != "id" {
			continue
		}
		for _, token := range strings.Fields(strings.ToLower(a.Val)) {
			for _, hint := range strippedClassHints {
				if token == hint {
					return true
				}
			}
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}
