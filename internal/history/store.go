package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/giuliopime/crossfade/internal/models"
)

// Store persists [models.TrackAnalysis] records in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store with the given database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const trackAnalysisColumns = `id, title, artist_name, album_title, artwork_url, isrc,
	apple_music_url, spotify_url, soundcloud_url, youtube_url, date_analyzed`

// Upsert replaces any existing record with the same id and inserts the
// new one as a single transaction, so no intermediate state with zero
// or duplicate records for that id is ever observable.
func (s *Store) Upsert(analysis *models.TrackAnalysis) error {
	if err := analysis.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM track_analyses WHERE id = ?", analysis.ID); err != nil {
		return fmt.Errorf("failed to delete existing analysis: %w", err)
	}

	query := `
		INSERT INTO track_analyses (` + trackAnalysisColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.Exec(query,
		analysis.ID,
		analysis.Title,
		analysis.ArtistName,
		analysis.AlbumTitle,
		analysis.ArtworkURL,
		analysis.ISRC,
		analysis.AppleMusicURL,
		analysis.SpotifyURL,
		analysis.SoundCloudURL,
		analysis.YouTubeURL,
		analysis.DateAnalyzed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}

	return nil
}

// Get retrieves a single analysis by its composite id.
func (s *Store) Get(id string) (*models.TrackAnalysis, error) {
	query := `SELECT ` + trackAnalysisColumns + ` FROM track_analyses WHERE id = ?`

	analysis, err := scanAnalysis(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("analysis not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	return analysis, nil
}

// Query retrieves analyses ordered most-recently-analyzed first, then
// by title. A non-empty filter applies a case-insensitive substring
// match across title, artist and album.
func (s *Store) Query(filter string) ([]*models.TrackAnalysis, error) {
	query := `SELECT ` + trackAnalysisColumns + ` FROM track_analyses`
	args := []any{}

	if filter != "" {
		query += `
			WHERE lower(title) LIKE ?
			   OR lower(artist_name) LIKE ?
			   OR lower(album_title) LIKE ?`
		needle := "%" + strings.ToLower(filter) + "%"
		args = append(args, needle, needle, needle)
	}

	query += " ORDER BY date_analyzed DESC, title ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*models.TrackAnalysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, analysis)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return analyses, nil
}

// Delete removes an analysis by id.
func (s *Store) Delete(id string) error {
	result, err := s.db.Exec("DELETE FROM track_analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}

	return nil
}

// scanner abstracts over [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row scanner) (*models.TrackAnalysis, error) {
	var (
		analysis     models.TrackAnalysis
		dateAnalyzed time.Time
	)

	err := row.Scan(
		&analysis.ID,
		&analysis.Title,
		&analysis.ArtistName,
		&analysis.AlbumTitle,
		&analysis.ArtworkURL,
		&analysis.ISRC,
		&analysis.AppleMusicURL,
		&analysis.SpotifyURL,
		&analysis.SoundCloudURL,
		&analysis.YouTubeURL,
		&dateAnalyzed,
	)
	if err != nil {
		return nil, err
	}

	analysis.DateAnalyzed = dateAnalyzed
	return &analysis, nil
}
