// File: internal/browser/dom/xpath.go
package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// xpathLiteral quotes s for use in an XPath expression.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	return "concat('" + strings.Join(parts, `', "'", '`) + "')"
}

// XPathLiteral is exported for callers that build their own expressions.
func XPathLiteral(s string) string { return xpathLiteral(s) }

// GenerateUniqueXPath builds an XPath that selects exactly node. The nearest
// ancestor-or-self with an id anchors the path; below it each step carries
// its 1-based index among same-tag siblings.
func GenerateUniqueXPath(node *html.Node) string {
	if node == nil {
		return ""
	}

	var steps []string
	anchored := false
	for n := node; n != nil && n.Type != html.DocumentNode; n = n.Parent {
		tag := Tag(n)
		if tag == "" {
			continue
		}
		if id := Attr(n, "id"); id != "" && uniqueID(n, id) {
			steps = append(steps, fmt.Sprintf("//*[@id=%s]", xpathLiteral(id)))
			anchored = true
			break
		}
		index := 1
		for prev := n.PrevSibling; prev != nil; prev = prev.PrevSibling {
			if Tag(prev) == tag {
				index++
			}
		}
		steps = append(steps, fmt.Sprintf("%s[%d]", tag, index))
	}
	if len(steps) == 0 {
		return "/"
	}

	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	path := strings.Join(steps, "/")
	if !anchored {
		path = "/" + path
	}
	return path
}

// uniqueID reports whether no other element in n's tree shares id.
func uniqueID(n *html.Node, id string) bool {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	count := 0
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if count > 1 {
			return
		}
		if c.Type == html.ElementNode && Attr(c, "id") == id {
			count++
		}
		for ch := c.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(root)
	return count == 1
}
