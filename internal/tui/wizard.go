package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathanielng/qdev/internal/layer"
	"github.com/nathanielng/qdev/internal/render"
)

// focusField identifies which input the cursor is on.
type focusField int

const (
	fieldVersion focusField = iota
	fieldStrategy
	fieldName
	fieldDeps
	fieldCount // sentinel for cycling
)

// Model is the generator wizard: pickers for version and strategy, text
// fields for dependencies and base name, and a live highlighted preview of
// the script. Every edit regenerates the script synchronously through the
// store subscription, so the preview is never out of date.
type Model struct {
	cfg      *layer.Config
	pipeline *render.Pipeline

	// publish, when non-nil, receives every regenerated artifact. The
	// preview server hooks in here.
	publish func(layer.Artifact)

	focus       focusField
	versionIdx  int
	strategyIdx int
	nameInput   textinput.Model
	depsInput   textarea.Model
	preview     viewport.Model
	lineNumbers bool

	status   string
	statusOK bool

	width  int
	height int

	help help.Model
	keys wizardKeyMap

	quitting bool
}

// New builds the wizard around an existing store and pipeline. The store's
// current selections become the initial cursor positions.
func New(cfg *layer.Config, pipeline *render.Pipeline, lineNumbers bool, publish func(layer.Artifact)) *Model {
	snap := cfg.Snapshot()

	versionIdx := 0
	for i, v := range layer.SupportedVersions {
		if v == snap.RuntimeVersion {
			versionIdx = i
		}
	}
	strategyIdx := 0
	for i, s := range layer.Strategies() {
		if s == snap.Strategy {
			strategyIdx = i
		}
	}

	name := textinput.New()
	name.Placeholder = layer.DefaultBaseName
	name.CharLimit = 64
	name.SetValue(snap.BaseName)

	deps := textarea.New()
	deps.Placeholder = "one requirement per line (default: " + layer.DefaultDependency + ")"
	deps.SetValue(snap.DependencySpec)
	deps.SetHeight(4)

	m := &Model{
		cfg:         cfg,
		pipeline:    pipeline,
		publish:     publish,
		versionIdx:  versionIdx,
		strategyIdx: strategyIdx,
		nameInput:   name,
		depsInput:   deps,
		preview:     viewport.New(80, 16),
		lineNumbers: lineNumbers,
		help:        help.New(),
		keys:        defaultKeyMap(),
	}

	cfg.Subscribe(m.regenerate)

	// Render the initial state so the preview is populated before the
	// first keystroke.
	m.regenerate(snap)
	return m
}

// regenerate is the store subscriber: snapshot in, recomputed display out.
func (m *Model) regenerate(snap layer.Snapshot) {
	art := layer.Generate(snap)
	m.pipeline.Present(art, m.lineNumbers)
	m.preview.SetContent(m.pipeline.Screen())
	if m.publish != nil {
		m.publish(art)
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextField):
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil

		case key.Matches(msg, m.keys.PrevField):
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			if err := m.pipeline.CopyToClipboard(); err != nil {
				m.setStatus(fmt.Sprintf("✗ %v", err), false)
			} else {
				m.setStatus("✓ Script copied to clipboard", true)
			}
			return m, nil

		case key.Matches(msg, m.keys.Save):
			filename := m.pipeline.Artifact().SuggestedFilename
			if err := m.pipeline.SaveToFile(""); err != nil {
				m.setStatus(fmt.Sprintf("✗ %v", err), false)
			} else {
				m.setStatus("✓ Saved "+filename, true)
			}
			return m, nil

		case key.Matches(msg, m.keys.Numbers):
			m.lineNumbers = !m.lineNumbers
			m.regenerate(m.cfg.Snapshot())
			return m, nil
		}

		// Left/right drive the pickers when one is focused.
		if m.focus == fieldVersion || m.focus == fieldStrategy {
			switch {
			case key.Matches(msg, m.keys.Left):
				m.movePicker(-1)
				return m, nil
			case key.Matches(msg, m.keys.Right):
				m.movePicker(1)
				return m, nil
			}
		}
	}

	return m, m.updateFocusedField(msg)
}

// movePicker shifts the focused picker by delta and commits the selection
// to the store. Selection through the store keeps validation in one place.
func (m *Model) movePicker(delta int) {
	switch m.focus {
	case fieldVersion:
		n := len(layer.SupportedVersions)
		m.versionIdx = (m.versionIdx + delta + n) % n
		if err := m.cfg.SelectRuntimeVersion(layer.SupportedVersions[m.versionIdx]); err != nil {
			m.setStatus(fmt.Sprintf("✗ %v", err), false)
		}
	case fieldStrategy:
		all := layer.Strategies()
		n := len(all)
		m.strategyIdx = (m.strategyIdx + delta + n) % n
		if err := m.cfg.SelectStrategy(all[m.strategyIdx]); err != nil {
			m.setStatus(fmt.Sprintf("✗ %v", err), false)
		}
	}
}

// updateFocusedField routes remaining messages into the focused text field
// and pushes any text change into the store.
func (m *Model) updateFocusedField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch m.focus {
	case fieldName:
		before := m.nameInput.Value()
		m.nameInput, cmd = m.nameInput.Update(msg)
		if m.nameInput.Value() != before {
			m.cfg.SetBaseName(m.nameInput.Value())
		}
	case fieldDeps:
		before := m.depsInput.Value()
		m.depsInput, cmd = m.depsInput.Update(msg)
		if m.depsInput.Value() != before {
			m.cfg.SetDependencySpec(m.depsInput.Value())
		}
	default:
		m.preview, cmd = m.preview.Update(msg)
	}

	return cmd
}

func (m *Model) setFocus(f focusField) {
	m.focus = f
	m.nameInput.Blur()
	m.depsInput.Blur()
	switch f {
	case fieldName:
		m.nameInput.Focus()
	case fieldDeps:
		m.depsInput.Focus()
	}
}

func (m *Model) setStatus(msg string, ok bool) {
	m.status = msg
	m.statusOK = ok
}

// layout resizes the child components to the terminal.
func (m *Model) layout() {
	width := m.width
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	m.nameInput.Width = width - 20
	m.depsInput.SetWidth(width - 18)
	m.preview.Width = width - 4

	// Title, four field rows, deps textarea, status, help.
	used := 14 + m.depsInput.Height()
	previewHeight := m.height - used
	if previewHeight < 5 {
		previewHeight = 5
	}
	m.preview.Height = previewHeight
	m.preview.SetContent(m.pipeline.Screen())
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(RenderTitle(AppName))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("generate a python dependency layer packaging script"))
	b.WriteString("\n\n")

	b.WriteString(m.renderVersionRow())
	b.WriteString("\n")
	b.WriteString(m.renderStrategyRow())
	b.WriteString("\n")
	b.WriteString(m.renderNameRow())
	b.WriteString("\n")
	b.WriteString(m.renderDepsRow())
	b.WriteString("\n\n")

	b.WriteString(PreviewBoxStyle.Render(m.preview.View()))
	b.WriteString("\n")

	if m.status != "" {
		if m.statusOK {
			b.WriteString(StatusOKStyle.Render(m.status))
		} else {
			b.WriteString(StatusErrStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m *Model) renderVersionRow() string {
	label := LabelStyle
	if m.focus == fieldVersion {
		label = FocusedLabelStyle
	}

	choices := make([]string, len(layer.SupportedVersions))
	for i, v := range layer.SupportedVersions {
		if i == m.versionIdx {
			choices[i] = SelectedChoiceStyle.Render(v)
		} else {
			choices[i] = ChoiceStyle.Render(v)
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		label.Render("Python"),
		strings.Join(choices, " "),
	)
}

func (m *Model) renderStrategyRow() string {
	label := LabelStyle
	if m.focus == fieldStrategy {
		label = FocusedLabelStyle
	}

	all := layer.Strategies()
	choices := make([]string, len(all))
	for i, s := range all {
		if i == m.strategyIdx {
			choices[i] = SelectedChoiceStyle.Render(s.String())
		} else {
			choices[i] = ChoiceStyle.Render(s.String())
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		label.Render("Strategy"),
		strings.Join(choices, " "),
	)
	return row + "\n" + strings.Repeat(" ", 14) +
		SubtitleStyle.Render(all[m.strategyIdx].Description())
}

func (m *Model) renderNameRow() string {
	label := LabelStyle
	if m.focus == fieldName {
		label = FocusedLabelStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		label.Render("Archive name"),
		m.nameInput.View(),
	)
}

func (m *Model) renderDepsRow() string {
	label := LabelStyle
	if m.focus == fieldDeps {
		label = FocusedLabelStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		label.Render("Dependencies"),
		m.depsInput.View(),
	)
}
