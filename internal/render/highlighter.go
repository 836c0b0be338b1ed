package render

import (
	"bytes"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "monokai"

// TerminalHighlighter renders ANSI-colored markup via chroma's terminal256
// formatter.
type TerminalHighlighter struct {
	// Theme is a chroma style name. Empty selects DefaultTheme; unknown
	// names fall back to chroma's default style.
	Theme string
}

// Highlight implements Highlighter.
func (h TerminalHighlighter) Highlight(text, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	theme := h.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlainHighlighter passes text through unchanged. Used when output is not a
// terminal or color is disabled.
type PlainHighlighter struct{}

// Highlight implements Highlighter.
func (PlainHighlighter) Highlight(text, _ string) (string, error) {
	return text, nil
}
