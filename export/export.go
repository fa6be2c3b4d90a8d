// Package export turns a translation into downloadable documents.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/AkashAS-coder/Clarity-Care/translator"
)

// Filename is the suggested name for the plain-text download.
const Filename = "plain-language-summary.txt"

// Format selects the export encoding.
type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat accepts txt, md or html; empty means txt.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatMarkdown, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// PlainText renders the summary followed by a "Next steps" list.
func PlainText(res translator.TranslationResult) string {
	var b strings.Builder
	b.WriteString(res.Simple)
	b.WriteString("\n\nNext steps:\n")
	for i, a := range res.Actions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + a)
	}
	return b.String()
}

// Markdown renders the summary as a small markdown document.
func Markdown(res translator.TranslationResult) string {
	var b strings.Builder
	b.WriteString("# Plain-language summary\n\n")
	b.WriteString(res.Simple)
	b.WriteString("\n\n## Next steps\n\n")
	for _, a := range res.Actions {
		b.WriteString("- " + a + "\n")
	}
	return b.String()
}

// RenderHTML converts the markdown document to HTML. Raw HTML in the note is
// dropped by goldmark's default renderer.
func RenderHTML(res translator.TranslationResult) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(res)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render encodes res in format and returns the body, its content type and a
// suggested filename.
func Render(res translator.TranslationResult, format Format) (body, contentType, filename string, err error) {
	switch format {
	case FormatMarkdown:
		return Markdown(res), "text/markdown; charset=utf-8", "plain-language-summary.md", nil
	case FormatHTML:
		html, err := RenderHTML(res)
		if err != nil {
			return "", "", "", err
		}
		return html, "text/html; charset=utf-8", "plain-language-summary.html", nil
	default:
		return PlainText(res), "text/plain; charset=utf-8", Filename, nil
	}
}
