// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow for playing music bingo:
//  1. [PlaylistListView] : Browse and select Spotify playlists
//  2. [BoardView] : Play on the generated board, checking off songs as they come up
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Board state flows through the game store, so checks and regenerated boards
// survive quitting the TUI.
//
// Keyboard navigation uses vim-style bindings (h/j/k/l arrows, space to check,
// r to regenerate, +/- to resize, tab to switch tabs, esc, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
