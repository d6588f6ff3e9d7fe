// Package sqlite provides SQLite implementations of domain repositories.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/flexpane/internal/domain/entity"
	"github.com/bnema/flexpane/internal/domain/repository"
	"github.com/bnema/flexpane/internal/logging"
)

const (
	getSizeHint = `SELECT session_id, container_name, grow, updated_at
FROM size_hints WHERE session_id = ? AND container_name = ?`

	setSizeHint = `INSERT INTO size_hints (session_id, container_name, grow, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (session_id, container_name) DO UPDATE SET
    grow = excluded.grow,
    updated_at = excluded.updated_at`

	listSizeHints = `SELECT session_id, container_name, grow, updated_at
FROM size_hints WHERE session_id = ? ORDER BY updated_at DESC, container_name`

	deleteSessionHints = `DELETE FROM size_hints WHERE session_id = ?`
	deleteAllHints     = `DELETE FROM size_hints`
)

type sizeHintRepo struct {
	db *sql.DB
}

// NewSizeHintRepository creates a new SQLite-backed size hint repository.
func NewSizeHintRepository(db *sql.DB) repository.SizeHintRepository {
	return &sizeHintRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHint(row rowScanner) (*entity.SizeHint, error) {
	var (
		h       entity.SizeHint
		updated int64
	)
	if err := row.Scan(&h.SessionID, &h.ContainerName, &h.Grow, &updated); err != nil {
		return nil, err
	}
	h.UpdatedAt = time.UnixMilli(updated).UTC()
	return &h, nil
}

func (r *sizeHintRepo) Get(ctx context.Context, sessionID, containerName string) (*entity.SizeHint, error) {
	hint, err := scanHint(r.db.QueryRowContext(ctx, getSizeHint, sessionID, containerName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrHintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get size hint: %w", err)
	}
	return hint, nil
}

func (r *sizeHintRepo) Set(ctx context.Context, hint *entity.SizeHint) error {
	log := logging.FromContext(ctx)
	log.Trace().
		Str("session", hint.SessionID).
		Str("container", hint.ContainerName).
		Float64("grow", hint.Grow).
		Msg("saving size hint")

	if hint.Grow < 0 {
		return fmt.Errorf("size hint grow must be non-negative, got %g", hint.Grow)
	}
	updated := hint.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := r.db.ExecContext(ctx, setSizeHint, hint.SessionID, hint.ContainerName, hint.Grow, updated.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save size hint: %w", err)
	}
	return nil
}

func (r *sizeHintRepo) List(ctx context.Context, sessionID string) ([]*entity.SizeHint, error) {
	rows, err := r.db.QueryContext(ctx, listSizeHints, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list size hints: %w", err)
	}
	defer rows.Close()

	var hints []*entity.SizeHint
	for rows.Next() {
		h, err := scanHint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan size hint: %w", err)
		}
		hints = append(hints, h)
	}
	return hints, rows.Err()
}

func (r *sizeHintRepo) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionHints, sessionID); err != nil {
		return fmt.Errorf("failed to delete session hints: %w", err)
	}
	return nil
}

func (r *sizeHintRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAllHints); err != nil {
		return fmt.Errorf("failed to delete size hints: %w", err)
	}
	return nil
}
