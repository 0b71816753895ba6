// Package models defines the data model for the music bingo application.
//
// [Song] is the unit the game works with: a playlist's tracks are reduced to
// songs by [SongsFromTracks], boards are slices of songs, and checked state is
// keyed by [SongID] identity strings. [Playlist], [Track] and [PlaylistExport]
// are service-neutral DTOs produced by the services package.
//
// The [Model] and [Repository] interfaces describe the persistence contract
// implemented by the repositories package.
package models
