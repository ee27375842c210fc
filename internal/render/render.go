// Package render turns generated recipe text into HTML for the result panel.
package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts model output to safe HTML.
type Renderer interface {
	Render(text string) template.HTML
}

// Verbatim shows the text as-is: escaped, with line breaks kept.
type Verbatim struct{}

func (Verbatim) Render(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}

// Markdown renders the text as Markdown. Raw HTML in the input is dropped.
type Markdown struct {
	md goldmark.Markdown
}

func NewMarkdown() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Render falls back to Verbatim when conversion fails.
func (m *Markdown) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(text), &buf); err != nil {
		return Verbatim{}.Render(text)
	}
	return template.HTML(buf.String())
}

// New returns the Markdown renderer when markdown is set and Verbatim otherwise.
func New(markdown bool) Renderer {
	if markdown {
		return NewMarkdown()
	}
	return Verbatim{}
}
