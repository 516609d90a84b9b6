// Package markdown renders paragraph-block markdown to sanitized HTML for
// the front office.
package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts markdown to HTML safe to embed in a page.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a Renderer with GFM extensions and a UGC sanitizing
// policy. Sanitizing runs after rendering, so raw HTML embedded in the
// markdown source is stripped as well.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
				extension.Strikethrough,
			),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown source to sanitized HTML. On a rendering failure
// it falls back to the sanitized source text rather than dropping content.
func (r *Renderer) Render(source string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return r.policy.Sanitize(source)
	}
	return r.policy.Sanitize(buf.String())
}
