// Package tui implements the interactive generator wizard.
//
// One screen: pickers for the python version and packaging strategy, text
// fields for the dependency list and archive base name, and a viewport with
// the highlighted script. Edits flow through the layer.Config store, whose
// subscription regenerates and re-renders the script synchronously, so the
// preview always matches the committed configuration. Copy and save act on
// the raw script text through the render pipeline's sinks.
package tui
