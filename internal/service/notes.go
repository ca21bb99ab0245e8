package service

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	notesEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	notesSanitizer = bluemonday.UGCPolicy()
)

// RenderNotes converts markdown notes and goal descriptions into
// sanitized HTML for dashboard payloads. Rendering failures fall back to
// the escaped source text.
func RenderNotes(markdown string) template.HTML {
	if markdown == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := notesEngine.Convert([]byte(markdown), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(markdown))
	}

	return template.HTML(notesSanitizer.SanitizeBytes(buf.Bytes()))
}
