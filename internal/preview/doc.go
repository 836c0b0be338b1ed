// Package preview serves a live browser preview of the generated script.
//
// An HTTP server renders the highlighted script as a dark-themed page; a
// WebSocket channel pushes the re-highlighted markup to connected browsers
// every time the configuration changes, so the page swaps code without a
// reload. By default the server binds loopback only; it can optionally
// announce itself over mDNS so other machines on the LAN can open the
// preview.
package preview
