package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iconidentify/xresolve/internal/domain"

	_ "modernc.org/sqlite"
)

// SQLiteHistoryRepository implements HistoryRepository on a SQLite file.
type SQLiteHistoryRepository struct {
	db *sql.DB
}

// NewSQLiteHistoryRepository opens (and if needed creates) the history
// database at path.
func NewSQLiteHistoryRepository(path string) (*SQLiteHistoryRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS resolutions (
			id TEXT PRIMARY KEY,
			post_id TEXT NOT NULL,
			source_url TEXT,
			kind TEXT NOT NULL,
			media_url TEXT NOT NULL,
			image_count INTEGER NOT NULL DEFAULT 0,
			author TEXT,
			resolved_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_resolutions_resolved_at ON resolutions(resolved_at);
		CREATE INDEX IF NOT EXISTS idx_resolutions_post_id ON resolutions(post_id);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteHistoryRepository{db: db}, nil
}

// Record appends one resolution to the log.
func (r *SQLiteHistoryRepository) Record(ctx context.Context, res *domain.Resolution) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO resolutions (id, post_id, source_url, kind, media_url, image_count, author, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID,
		res.PostID.String(),
		res.SourceURL,
		string(res.Kind),
		res.MediaURL,
		res.ImageCount,
		res.Author,
		res.ResolvedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert resolution: %w", err)
	}
	return nil
}

// Recent returns up to limit resolutions, newest first.
func (r *SQLiteHistoryRepository) Recent(ctx context.Context, limit int) ([]*domain.Resolution, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, post_id, source_url, kind, media_url, image_count, author, resolved_at
		FROM resolutions
		ORDER BY resolved_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query resolutions: %w", err)
	}
	defer rows.Close()

	var result []*domain.Resolution
	for rows.Next() {
		var (
			res        domain.Resolution
			postID     string
			kind       string
			resolvedAt string
		)
		if err := rows.Scan(
			&res.ID,
			&postID,
			&res.SourceURL,
			&kind,
			&res.MediaURL,
			&res.ImageCount,
			&res.Author,
			&resolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		res.PostID = domain.PostID(postID)
		res.Kind = domain.MediaKind(kind)
		if ts, err := time.Parse(time.RFC3339Nano, resolvedAt); err == nil {
			res.ResolvedAt = ts
		}
		result = append(result, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resolutions: %w", err)
	}

	return result, nil
}

// Close closes the underlying database.
func (r *SQLiteHistoryRepository) Close() error {
	return r.db.Close()
}
