package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathanielng/qdev/internal/layer"
)

// fakeHighlighter wraps text in markers so tests can tell markup from raw
// text.
type fakeHighlighter struct {
	lastLanguage string
	fail         bool
}

func (f *fakeHighlighter) Highlight(text, language string) (string, error) {
	f.lastLanguage = language
	if f.fail {
		return "", errors.New("lexer exploded")
	}
	return "<<" + text + ">>", nil
}

type fakeClipboard struct {
	written string
	fail    bool
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.fail {
		return errors.New("no display")
	}
	f.written = text
	return nil
}

type fakeSaver struct {
	files map[string][]byte
}

func (f *fakeSaver) Save(filename string, content []byte) error {
	if f.files == nil {
		f.files = make(map[string][]byte)
	}
	f.files[filename] = content
	return nil
}

func sampleArtifact() layer.Artifact {
	return layer.Generate(layer.Snapshot{
		RuntimeVersion: "3.11",
		Strategy:       layer.StrategyLegacyVenv,
		DependencySpec: "requests",
		BaseName:       "demo",
	})
}

func TestPipeline_PresentIsFresh(t *testing.T) {
	h := &fakeHighlighter{}
	p := NewPipeline(h, nil, nil)

	if p.State() != StateStale {
		t.Error("new pipeline should start Stale")
	}

	art := sampleArtifact()
	p.Present(art, false)

	if p.State() != StateFresh {
		t.Error("pipeline should be Fresh after Present")
	}
	if h.lastLanguage != Language {
		t.Errorf("highlighted with language %q, want %q", h.lastLanguage, Language)
	}
	if p.Screen() != "<<"+art.Text+">>" {
		t.Error("Screen() should return the highlighter's markup")
	}
}

func TestPipeline_PresentReplacesWholesale(t *testing.T) {
	p := NewPipeline(&fakeHighlighter{}, nil, nil)

	first := layer.Generate(layer.Snapshot{RuntimeVersion: "3.9", Strategy: layer.StrategyLegacyVenv})
	second := layer.Generate(layer.Snapshot{RuntimeVersion: "3.12", Strategy: layer.StrategyFastVenv})

	p.Present(first, false)
	p.Present(second, false)

	if strings.Contains(p.Screen(), "3.9") {
		t.Error("markup from the previous artifact leaked into the display")
	}
	if p.Artifact().Text != second.Text {
		t.Error("Artifact() should return the last presented artifact")
	}
}

func TestPipeline_HighlightFailureDegradesToPlainText(t *testing.T) {
	p := NewPipeline(&fakeHighlighter{fail: true}, nil, nil)
	art := sampleArtifact()

	p.Present(art, false)

	if p.State() != StateFresh {
		t.Error("pipeline should still reach Fresh when highlighting fails")
	}
	if p.Screen() != art.Text {
		t.Error("display should fall back to the raw script text")
	}
}

func TestPipeline_LineNumbersAreDisplayOnly(t *testing.T) {
	clip := &fakeClipboard{}
	p := NewPipeline(&fakeHighlighter{}, clip, nil)
	art := sampleArtifact()

	p.Present(art, true)

	screen := p.Screen()
	if !strings.Contains(screen, "   1  ") {
		t.Errorf("line-numbered display missing ordinal for first line:\n%s", screen)
	}

	if err := p.CopyToClipboard(); err != nil {
		t.Fatalf("CopyToClipboard() error = %v", err)
	}
	if clip.written != art.Text {
		t.Error("clipboard should receive raw text without line numbers or markup")
	}
}

func TestPipeline_CopyFailure(t *testing.T) {
	clip := &fakeClipboard{fail: true}
	p := NewPipeline(&fakeHighlighter{}, clip, nil)
	art := sampleArtifact()
	p.Present(art, false)

	before := p.Screen()
	err := p.CopyToClipboard()
	if !errors.Is(err, ErrClipboardUnavailable) {
		t.Errorf("expected ErrClipboardUnavailable, got %v", err)
	}
	if p.Screen() != before || p.State() != StateFresh {
		t.Error("clipboard failure must not disturb the rendered state")
	}
}

func TestPipeline_SaveUsesSuggestedFilename(t *testing.T) {
	saver := &fakeSaver{}
	p := NewPipeline(&fakeHighlighter{}, nil, saver)
	art := sampleArtifact()
	p.Present(art, true)

	if err := p.SaveToFile(""); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	content, ok := saver.files[art.SuggestedFilename]
	if !ok {
		t.Fatalf("no file saved under suggested name %q", art.SuggestedFilename)
	}
	if string(content) != art.Text {
		t.Error("saved content should be raw text, not markup")
	}
}

func TestPipeline_SaveExplicitFilename(t *testing.T) {
	saver := &fakeSaver{}
	p := NewPipeline(&fakeHighlighter{}, nil, saver)
	p.Present(sampleArtifact(), false)

	if err := p.SaveToFile("build.sh"); err != nil {
		t.Fatalf("SaveToFile(build.sh) error = %v", err)
	}
	if _, ok := saver.files["build.sh"]; !ok {
		t.Error("explicit filename was not honored")
	}
}

func TestTerminalHighlighter_ProducesANSIMarkup(t *testing.T) {
	h := TerminalHighlighter{}
	out, err := h.Highlight("#!/bin/bash\necho hello\n", "bash")
	if err != nil {
		t.Fatalf("Highlight() error = %v", err)
	}
	if !strings.Contains(out, "echo") {
		t.Error("highlighted output lost the source text")
	}
	if !strings.Contains(out, "\x1b[") {
		t.Error("terminal256 output should contain ANSI escapes")
	}
}

func TestHTMLRenderer_RenderPage(t *testing.T) {
	r := HTMLRenderer{LineNumbers: true}
	page, err := r.RenderPage("pip-311.sh", "#!/bin/bash\necho hi\n", "bash")
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}

	for _, want := range []string{"<!DOCTYPE html>", "pip-311.sh", "echo", "Generated with qdev"} {
		if !strings.Contains(page, want) {
			t.Errorf("RenderPage() missing %q", want)
		}
	}
}

func TestNumberLines(t *testing.T) {
	out := NumberLines("a\nb\nc")
	want := "   1  a\n   2  b\n   3  c"
	if out != want {
		t.Errorf("numberLines() = %q, want %q", out, want)
	}
}
