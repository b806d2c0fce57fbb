// Package markup converts slide field text written in markdown or inline HTML
// into sanitized HTML.
package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter implements master.MarkupConverter. It is safe for concurrent use.
type Converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	unsafe bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithUnsafeHTML skips sanitation. Only for trusted documents.
func WithUnsafeHTML(enabled bool) Option {
	return func(c *Converter) { c.unsafe = enabled }
}

func New(opts ...Option) *Converter {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowElements("span", "sup", "sub")
	c := &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Table),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: policy,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertToHTML renders markdown (inline HTML passes through) and sanitizes the
// result. A single paragraph is unwrapped so short field values stay inline.
func (c *Converter) ConvertToHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	out := buf.String()
	if !c.unsafe {
		out = c.policy.Sanitize(out)
	}
	return unwrapParagraph(strings.TrimSpace(out)), nil
}

func unwrapParagraph(s string) string {
	if !strings.HasPrefix(s, "<p>") || !strings.HasSuffix(s, "</p>") {
		return s
	}
	inner := s[len("<p>") : len(s)-len("</p>")]
	if strings.Contains(inner, "<p>") {
		return s
	}
	return inner
}
