// Package tasks orchestrates board printing operations with real-time progress reporting.
//
// # Core Operations
//
// The [PrintEngine] implements two operations:
//
//  1. [PrintEngine.Run] : Print boards for a single playlist
//     - Fetches the playlist export (cache first, then the catalog API)
//     - Derives the bingo song list from the playlist tracks
//     - Renders one page per board and writes the PDF
//
//  2. [PrintEngine.BulkPrint] : Print boards for many playlists concurrently
//     - Fetches playlists sequentially behind a rate limiter
//     - Renders and writes PDFs through a bounded worker pool
//     - Writes a manifest file summarizing successes and failures
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Playlist Caching
//
// The optional [PlaylistCacher] interface enables automatic playlist persistence during printing.
// Exports are cached silently (errors ignored) so an offline rerun can print without refetching.
package tasks
