package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathanielng/qdev/internal/layer"
)

// Language is the only language id the pipeline ever requests: the
// generator emits shell scripts and nothing else.
const Language = "bash"

// ErrClipboardUnavailable is reported when the platform clipboard cannot be
// written. It is recoverable: the displayed artifact is unaffected.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Highlighter produces display markup for source text. Implementations are
// expected to be total for valid language ids; on error the pipeline
// degrades to plain text rather than failing.
type Highlighter interface {
	Highlight(text, language string) (string, error)
}

// ClipboardWriter writes text to the platform clipboard.
type ClipboardWriter interface {
	WriteText(text string) error
}

// FileSaver persists raw artifact text under a filename.
type FileSaver interface {
	Save(filename string, content []byte) error
}

// State is the display freshness of the pipeline.
type State int

const (
	// StateStale means the artifact changed and markup has not been
	// recomputed yet. Internal only; Present leaves the pipeline Fresh.
	StateStale State = iota
	// StateFresh means the markup matches the current artifact.
	StateFresh
)

// Pipeline renders artifacts and exposes the three sinks: screen, clipboard,
// file. Not safe for concurrent use; the tool drives it from one UI loop.
type Pipeline struct {
	highlighter Highlighter
	clipboard   ClipboardWriter
	saver       FileSaver

	artifact    layer.Artifact
	lineNumbers bool
	markup      string
	state       State
}

// NewPipeline constructs a pipeline with explicit collaborators. Any of
// clipboard or saver may be nil when the corresponding sink is unused.
func NewPipeline(h Highlighter, c ClipboardWriter, s FileSaver) *Pipeline {
	return &Pipeline{
		highlighter: h,
		clipboard:   c,
		saver:       s,
		state:       StateStale,
	}
}

// Present replaces the current artifact and recomputes markup synchronously.
// The previous display is discarded wholesale; callers never observe an
// intermediate state.
func (p *Pipeline) Present(art layer.Artifact, lineNumbers bool) {
	p.artifact = art
	p.lineNumbers = lineNumbers
	p.state = StateStale
	p.rehighlight()
}

func (p *Pipeline) rehighlight() {
	markup, err := p.highlighter.Highlight(p.artifact.Text, Language)
	if err != nil {
		// Degrade to the plain script; display must never fail.
		markup = p.artifact.Text
	}
	if p.lineNumbers {
		markup = NumberLines(markup)
	}
	p.markup = markup
	p.state = StateFresh
}

// Screen returns the current markup for on-screen display. Always succeeds.
func (p *Pipeline) Screen() string {
	return p.markup
}

// State returns the display freshness. After Present this is always
// StateFresh.
func (p *Pipeline) State() State {
	return p.state
}

// Artifact returns the last presented artifact.
func (p *Pipeline) Artifact() layer.Artifact {
	return p.artifact
}

// CopyToClipboard writes the raw artifact text (not the markup) to the
// clipboard. Failure is reported as ErrClipboardUnavailable and does not
// disturb the rendered state.
func (p *Pipeline) CopyToClipboard() error {
	if p.clipboard == nil {
		return fmt.Errorf("%w: no clipboard collaborator configured", ErrClipboardUnavailable)
	}
	if err := p.clipboard.WriteText(p.artifact.Text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	return nil
}

// SaveToFile writes the raw artifact text under filename. An empty filename
// uses the artifact's suggested one. Beyond the returned error there is no
// failure contract; the save is fire-and-forget.
func (p *Pipeline) SaveToFile(filename string) error {
	if p.saver == nil {
		return errors.New("no file saver configured")
	}
	if filename == "" {
		filename = p.artifact.SuggestedFilename
	}
	if err := p.saver.Save(filename, []byte(p.artifact.Text)); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}

// NumberLines prefixes each markup line with its 1-based ordinal. Ordinals
// are display-only and never reach the clipboard or saved files.
func NumberLines(markup string) string {
	lines := strings.Split(markup, "\n")
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%4d  %s", i+1, line)
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
