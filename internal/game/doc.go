// Package game implements the bingo board engine: uniform random sampling of
// songs into boards and a persistent per-playlist game state store.
//
// [Store] is the single source of truth for every playlist's board, board size
// and checked songs, plus process-wide UI state (current tab, song list
// visibility). Every mutation writes a snapshot through the injected [Storage]
// port; snapshots round-trip the checked-song sets as sorted string slices
// because the persisted form is plain JSON.
//
// All operations are synchronous and guarded by a mutex so the CLI, TUI and
// tests can share one store without torn state.
package game
