// Package richtext renders untrusted Markdown (the AI stylist's
// recommendation text) into sanitized HTML.
package richtext

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var policy = bluemonday.UGCPolicy()

// Render converts Markdown to sanitized HTML safe to embed in templates.
// On a Markdown failure the raw text is returned sanitized as plain HTML.
func Render(markdown string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return template.HTML(policy.Sanitize(markdown))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}
