// Package cli is the idolcode terminal front end.
//
// It wires configuration, the local store, the backend gateway and the
// application services, and exposes them as a cobra command tree whose
// default command is an interactive REPL. The REPL covers the home screen
// (idol search and selection), sign-in, the comparison dashboard and the
// problem workspace, which runs as a nested REPL of its own.
//
// Screens render through lipgloss; duck chat replies are Markdown and
// render through glamour.
package cli
