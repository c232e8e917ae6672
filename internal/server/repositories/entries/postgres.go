// Package entries provides PostgreSQL-backed repositories for diary entries.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/dbx"
	"github.com/dmitrijs2005/daybook/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts entry and fills CreatedAt from the database clock.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO entries (id, user_id, title, content, icon)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.OwnerID, entry.Title, entry.Content, entry.Icon).Scan(&entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// ListByOwner returns every entry of ownerID, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	query := `
		SELECT id, user_id, title, content, icon, created_at FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, ownerID)
}

// Update overwrites title and content of an owned entry and returns the
// stored record. No match yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, entryID, title, content string) (*models.Entry, error) {
	query := `
		UPDATE entries SET title = $3, content = $4
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, content, icon, created_at
	`
	key, ok := dbx.UUIDKey(entryID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	var item models.Entry
	err := r.db.QueryRowContext(ctx, query, key, ownerID, title, content).Scan(
		&item.ID, &item.OwnerID, &item.Title, &item.Content, &item.Icon, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}

// Delete removes an owned entry. No match yields common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, ownerID, entryID string) error {
	query := `DELETE FROM entries WHERE id = $1 AND user_id = $2`

	key, ok := dbx.UUIDKey(entryID)
	if !ok {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, query, key, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// ListWithoutIcon returns entries stored before icons existed.
func (r *PostgresRepository) ListWithoutIcon(ctx context.Context) ([]*models.Entry, error) {
	query := `
		SELECT id, user_id, title, content, icon, created_at FROM entries
		WHERE icon = ''
	`
	return r.list(ctx, query)
}

// SetIcon replaces the icon of a single entry regardless of owner.
func (r *PostgresRepository) SetIcon(ctx context.Context, entryID, icon string) error {
	query := `UPDATE entries SET icon = $2 WHERE id = $1`

	key, ok := dbx.UUIDKey(entryID)
	if !ok {
		return common.ErrorNotFound
	}

	if _, err := r.db.ExecContext(ctx, query, key, icon); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		var item models.Entry
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Title, &item.Content, &item.Icon, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
