package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

// contentPolicy is the allow-list applied to rendered task content. Anything
// outside p, strong, em, ul, ol, li, a (href/title only), code and pre is
// stripped.
var contentPolicy = newContentPolicy()

func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements("p", "strong", "em", "ul", "ol", "li", "code", "pre")
	p.AllowAttrs("href", "title").OnElements("a")
	return p
}

// RenderMarkdown converts user-supplied Markdown to sanitized HTML. Tasks are
// persisted in this form only; raw Markdown is never stored.
func RenderMarkdown(content string) string {
	html := blackfriday.Run([]byte(content))
	return strings.TrimSpace(string(contentPolicy.SanitizeBytes(html)))
}
