package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/shared"
)

// PlaylistRepository implements models.Repository[*models.CachedPlaylist] for
// the local playlist cache.
//
// Exports are stored whole as a JSON payload column so a cached playlist can
// rebuild its full track list without refetching the catalog API. Soft deletes
// keep rows around for debugging.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new cached playlist with generated ID and sequence
func (r *PlaylistRepository) Create(playlist *models.CachedPlaylist) error {
	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	playlist.SetID(shared.GenerateID())
	playlist.SetSequence(sequence)

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	payload, err := json.Marshal(playlist.Export())
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	query := `
		INSERT INTO playlists (id, sequence, service, service_id, name, description, track_count, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		playlist.ID(),
		sequence,
		playlist.Service(),
		playlist.ServiceID(),
		playlist.Name(),
		playlist.Description(),
		playlist.TrackCount(),
		string(payload),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// Get retrieves a cached playlist by ID, excluding soft-deleted rows
func (r *PlaylistRepository) Get(id string) (*models.CachedPlaylist, error) {
	query := `
		SELECT id, sequence, service, service_id, payload, created_at, updated_at, deleted_at
		FROM playlists
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByServiceID retrieves a cached playlist by service and the playlist's ID
// on that service.
func (r *PlaylistRepository) GetByServiceID(service, serviceID string) (*models.CachedPlaylist, error) {
	query := `
		SELECT id, sequence, service, service_id, payload, created_at, updated_at, deleted_at
		FROM playlists
		WHERE service = ? AND service_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, service, serviceID))
}

// Update replaces the stored export for an existing cached playlist
func (r *PlaylistRepository) Update(playlist *models.CachedPlaylist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	payload, err := json.Marshal(playlist.Export())
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	now := time.Now()
	playlist.SetUpdatedAt(now)

	query := `
		UPDATE playlists
		SET name = ?, description = ?, track_count = ?, payload = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		playlist.Name(),
		playlist.Description(),
		playlist.TrackCount(),
		string(payload),
		now,
		playlist.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("playlist not found or already deleted: %s", playlist.ID())
	}

	return nil
}

// Delete soft-deletes a cached playlist by ID
func (r *PlaylistRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE playlists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("playlist not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all cached playlists matching the given criteria, excluding
// soft-deleted rows. Supported criteria: "service".
func (r *PlaylistRepository) List(criteria map[string]any) ([]*models.CachedPlaylist, error) {
	query := `
		SELECT id, sequence, service, service_id, payload, created_at, updated_at, deleted_at
		FROM playlists
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if service, ok := criteria["service"].(string); ok && service != "" {
		query += " AND service = ?"
		args = append(args, service)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.CachedPlaylist
	for rows.Next() {
		playlist, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	return playlists, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *PlaylistRepository) scanOne(row *sql.Row) (*models.CachedPlaylist, error) {
	playlist, err := r.scan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w", shared.ErrPlaylistNotFound)
	}
	return playlist, err
}

func (r *PlaylistRepository) scanRow(rows *sql.Rows) (*models.CachedPlaylist, error) {
	return r.scan(rows)
}

func (r *PlaylistRepository) scan(row scannable) (*models.CachedPlaylist, error) {
	var (
		id, service, serviceID, payload string
		sequence                        int
		createdAt, updatedAt            time.Time
		deletedAt                       *time.Time
	)

	if err := row.Scan(&id, &sequence, &service, &serviceID, &payload, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	var export models.PlaylistExport
	if err := json.Unmarshal([]byte(payload), &export); err != nil {
		return nil, fmt.Errorf("failed to decode payload for %s: %w", id, err)
	}

	playlist := models.NewCachedPlaylist(sequence, service, serviceID, export)
	playlist.SetID(id)
	playlist.SetCreatedAt(createdAt)
	playlist.SetUpdatedAt(updatedAt)
	playlist.SetDeletedAt(deletedAt)
	return playlist, nil
}
