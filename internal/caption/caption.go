package caption

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
)

// Render converts raw caption markup into inline HTML according to the
// configured caption format. Markdown captions are rendered through goldmark
// and unwrapped from the enclosing paragraph so they stay inline.
func Render(format, text string) (string, error) {
	switch format {
	case "", "markdown":
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(text), &buf); err != nil {
			return "", err
		}
		return unwrapParagraph(buf.String()), nil
	case "html":
		return text, nil
	case "plain":
		return html.EscapeString(text), nil
	default:
		return "", fmt.Errorf("unknown caption format %q", format)
	}
}

func unwrapParagraph(rendered string) string {
	out := strings.TrimSpace(rendered)
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out
}
