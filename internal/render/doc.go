// Package render turns generated script artifacts into displayable output
// and routes them to sinks.
//
// The Pipeline is constructed with explicit collaborators (a Highlighter for
// markup, a ClipboardWriter, a FileSaver) rather than reaching for globals,
// so every sink can be substituted in tests. Highlighting always requests
// the "bash" language: the generator only ever emits shell scripts.
//
// # Display State
//
// The pipeline has exactly two states, Stale and Fresh. Present recomputes
// markup synchronously, so the Stale state is never observable from outside:
// by the time Present returns, the markup matches the artifact. There is no
// cancellation because nothing here blocks.
//
// # Sinks
//
// Screen always succeeds and replaces prior markup wholesale. Copy and save
// operate on the raw artifact text, never the markup, and never on the
// line-number ordinals, which exist for display only. A clipboard failure
// is reported as ErrClipboardUnavailable and leaves the rendered state
// untouched; file saves are fire-and-forget beyond the error they return.
package render
