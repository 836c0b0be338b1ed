package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HTMLRenderer produces a standalone dark-themed HTML page for a highlighted
// script, suitable for saving to disk or serving from the preview server.
type HTMLRenderer struct {
	// Theme is a chroma style name. Empty selects DefaultTheme.
	Theme string

	// LineNumbers enables a line-number gutter in the rendered page. The
	// numbers are part of the display only; the underlying text is never
	// modified.
	LineNumbers bool
}

// Fragment highlights text and returns just the inner markup (a styled
// <pre> block). The preview server pushes fragments over its socket so the
// page can swap code without a reload.
func (r HTMLRenderer) Fragment(text, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	theme := r.Theme
	if theme == "" {
		theme = DefaultTheme
	}
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	formatter := chromahtml.New(
		chromahtml.WithLineNumbers(r.LineNumbers),
		chromahtml.TabWidth(4),
	)

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("failed to tokenize source: %w", err)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("failed to format HTML: %w", err)
	}
	return buf.String(), nil
}

// RenderPage highlights text and wraps it in a complete HTML document with
// the given title shown in the header.
func (r HTMLRenderer) RenderPage(title, text, language string) (string, error) {
	fragment, err := r.Fragment(text, language)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		Title:    title,
		Language: language,
		Code:     template.HTML(fragment),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render HTML page: %w", err)
	}
	return buf.String(), nil
}

type pageData struct {
	Title    string
	Language string
	Code     template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - qdev</title>
<style>
:root {
  --background: #09090b;
  --foreground: #fafafa;
  --card: #171717;
  --muted: #27272a;
  --muted-foreground: #a1a1aa;
  --primary: #6366f1;
  --border: #27272a;
  --radius: 0.5rem;
}
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  background-color: var(--background);
  color: var(--foreground);
  line-height: 1.6;
  min-height: 100vh;
  display: flex;
  flex-direction: column;
}
header {
  background-color: var(--card);
  border-bottom: 1px solid var(--border);
  padding: 1rem 2rem;
  display: flex;
  justify-content: space-between;
  align-items: center;
}
h1 { font-size: 1.25rem; font-weight: 600; }
.lang {
  font-size: 0.75rem;
  color: var(--primary);
  background-color: var(--muted);
  padding: 0.25rem 0.5rem;
  border-radius: var(--radius);
}
main { flex: 1; max-width: 1200px; margin: 0 auto; padding: 2rem; width: 100%; }
.code-container {
  background-color: var(--card);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  overflow-x: auto;
  padding: 1rem;
}
.code-container pre {
  font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, monospace;
  font-size: 0.875rem;
  line-height: 1.7;
}
footer {
  background-color: var(--card);
  border-top: 1px solid var(--border);
  padding: 1rem 2rem;
  font-size: 0.875rem;
  color: var(--muted-foreground);
  text-align: center;
}
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <span class="lang">{{.Language}}</span>
</header>
<main>
  <div class="code-container" id="code">
{{.Code}}
  </div>
</main>
<footer>Generated with qdev</footer>
</body>
</html>
`))
