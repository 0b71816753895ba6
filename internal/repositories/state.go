package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// StateRepository persists opaque state blobs in the app_state table, one row
// per key. It satisfies game.Storage when constructed with the game snapshot
// key.
type StateRepository struct {
	db  *sql.DB
	key string
}

// NewStateRepository creates a StateRepository bound to a single key.
func NewStateRepository(db *sql.DB, key string) *StateRepository {
	return &StateRepository{db: db, key: key}
}

// Load returns the stored blob for the key, or (nil, nil) when no state has
// been saved yet.
func (r *StateRepository) Load() ([]byte, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM app_state WHERE key = ?", r.key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state %q: %w", r.key, err)
	}
	return []byte(value), nil
}

// Save upserts the blob for the key.
func (r *StateRepository) Save(data []byte) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, r.key, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to save state %q: %w", r.key, err)
	}
	return nil
}
