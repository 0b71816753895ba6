package models

import (
	"fmt"
	"time"
)

// CachedPlaylist is the persisted form of a playlist export, cached locally so
// boards can be generated and printed without refetching the catalog API.
//
// Implements [Model]; stored by repositories.PlaylistRepository.
type CachedPlaylist struct {
	id        string
	sequence  int
	service   string
	serviceID string
	export    PlaylistExport
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewCachedPlaylist creates a cache entry for an exported playlist.
// The database ID is assigned by the repository on Create.
func NewCachedPlaylist(sequence int, service, serviceID string, export PlaylistExport) *CachedPlaylist {
	now := time.Now()
	return &CachedPlaylist{
		sequence:  sequence,
		service:   service,
		serviceID: serviceID,
		export:    export,
		createdAt: now,
		updatedAt: now,
	}
}

func (p *CachedPlaylist) ID() string             { return p.id }
func (p *CachedPlaylist) Sequence() int          { return p.sequence }
func (p *CachedPlaylist) Service() string        { return p.service }
func (p *CachedPlaylist) ServiceID() string      { return p.serviceID }
func (p *CachedPlaylist) Export() PlaylistExport { return p.export }
func (p *CachedPlaylist) Name() string           { return p.export.Playlist.Name }
func (p *CachedPlaylist) Description() string    { return p.export.Playlist.Description }
func (p *CachedPlaylist) TrackCount() int        { return len(p.export.Tracks) }
func (p *CachedPlaylist) CreatedAt() time.Time   { return p.createdAt }
func (p *CachedPlaylist) UpdatedAt() time.Time   { return p.updatedAt }
func (p *CachedPlaylist) DeletedAt() *time.Time  { return p.deletedAt }

func (p *CachedPlaylist) SetID(id string)            { p.id = id }
func (p *CachedPlaylist) SetSequence(n int)          { p.sequence = n }
func (p *CachedPlaylist) SetExport(e PlaylistExport) { p.export = e }
func (p *CachedPlaylist) SetCreatedAt(t time.Time)   { p.createdAt = t }
func (p *CachedPlaylist) SetUpdatedAt(t time.Time)   { p.updatedAt = t }
func (p *CachedPlaylist) SetDeletedAt(t *time.Time)  { p.deletedAt = t }

// Validate checks that the cache entry carries enough data to be useful.
func (p *CachedPlaylist) Validate() error {
	if p.service == "" {
		return fmt.Errorf("cached playlist missing service")
	}
	if p.serviceID == "" {
		return fmt.Errorf("cached playlist missing service id")
	}
	if p.export.Playlist.Name == "" {
		return fmt.Errorf("cached playlist missing name")
	}
	return nil
}
