// Package highlight renders arbitrary source files with syntax coloring,
// detecting the language from the filename. It backs the "qdev highlight"
// command; the generator pipeline in internal/render does not go through it
// because generated artifacts are always shell.
package highlight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/nathanielng/qdev/internal/render"
)

// FallbackLanguage is used when the language cannot be detected from the
// filename.
const FallbackLanguage = "python"

// Options controls how a file is rendered.
type Options struct {
	// Language overrides detection when non-empty.
	Language string

	// Theme is a chroma style name. Empty selects the default theme.
	Theme string

	// LineNumbers enables a 1-based ordinal gutter.
	LineNumbers bool
}

// DetectLanguage returns the language id for a filename, falling back to
// FallbackLanguage when no lexer matches.
func DetectLanguage(filename string) string {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		return FallbackLanguage
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

// resolveLanguage applies the override or detects from the filename.
func (o Options) resolveLanguage(filename string) string {
	if o.Language != "" {
		return o.Language
	}
	return DetectLanguage(filename)
}

// FileToTerminal reads path and returns ANSI-colored markup.
func FileToTerminal(path string, opts Options) (string, error) {
	code, lang, err := readSource(path, opts)
	if err != nil {
		return "", err
	}

	h := render.TerminalHighlighter{Theme: opts.Theme}
	out, err := h.Highlight(code, lang)
	if err != nil {
		return "", fmt.Errorf("failed to highlight %s: %w", path, err)
	}
	if opts.LineNumbers {
		out = render.NumberLines(out)
	}
	return out, nil
}

// FileToHTML reads path and returns a standalone HTML page.
func FileToHTML(path string, opts Options) (string, error) {
	code, lang, err := readSource(path, opts)
	if err != nil {
		return "", err
	}

	r := render.HTMLRenderer{Theme: opts.Theme, LineNumbers: opts.LineNumbers}
	page, err := r.RenderPage(filepath.Base(path), code, lang)
	if err != nil {
		return "", fmt.Errorf("failed to highlight %s: %w", path, err)
	}
	return page, nil
}

// FileToBrowser renders path as HTML and opens it in the default browser.
// Returns the temp file path that was opened.
func FileToBrowser(path string, opts Options) (string, error) {
	page, err := FileToHTML(path, opts)
	if err != nil {
		return "", err
	}
	return render.OpenInBrowser(page)
}

func readSource(path string, opts Options) (code, language string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), opts.resolveLanguage(path), nil
}
