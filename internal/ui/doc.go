// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for browsing analyzed tracks:
//  1. [HistoryListView] : Browse and filter the analysis history
//  2. [DetailView] : Inspect one track's per-platform availability
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// From the detail view a track's link can be copied to the clipboard, opened in
// the browser or the record deleted from history.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, c/o/d, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
