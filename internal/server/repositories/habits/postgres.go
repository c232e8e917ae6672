// Package habits provides PostgreSQL-backed repositories for tracked habits.
package habits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/dbx"
	"github.com/dmitrijs2005/daybook/internal/server/models"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgresRepository implements habit storage over a dbx.DBTX (*sql.DB or *sql.Tx).
// completed_dates is a TEXT[] column.
type PostgresRepository struct {
	db    dbx.DBTX
	types *pgtype.Map
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, types: pgtype.NewMap()}
}

func (r *PostgresRepository) Create(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	if habit.CompletedDates == nil {
		habit.CompletedDates = []string{}
	}

	query := `
		INSERT INTO habits (id, user_id, name, completed_dates)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		habit.ID, habit.OwnerID, habit.Name, habit.CompletedDates).Scan(&habit.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return habit, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Habit, error) {
	query := `
		SELECT id, user_id, name, completed_dates, created_at FROM habits
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select habits: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Habit, 0)
	for rows.Next() {
		var item models.Habit
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Name, r.types.SQLScanner(&item.CompletedDates), &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if item.CompletedDates == nil {
			item.CompletedDates = []string{}
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, ownerID, habitID string) (*models.Habit, error) {
	query := `
		SELECT id, user_id, name, completed_dates, created_at FROM habits
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`
	key, ok := dbx.UUIDKey(habitID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	var item models.Habit
	err := r.db.QueryRowContext(ctx, query, key, ownerID).Scan(
		&item.ID, &item.OwnerID, &item.Name, r.types.SQLScanner(&item.CompletedDates), &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if item.CompletedDates == nil {
		item.CompletedDates = []string{}
	}
	return &item, nil
}

func (r *PostgresRepository) SetCompletedDates(ctx context.Context, ownerID, habitID string, dates []string) error {
	query := `UPDATE habits SET completed_dates = $3 WHERE id = $1 AND user_id = $2`

	key, ok := dbx.UUIDKey(habitID)
	if !ok {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, query, key, ownerID, dates)
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

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, habitID string) error {
	query := `DELETE FROM habits WHERE id = $1 AND user_id = $2`

	key, ok := dbx.UUIDKey(habitID)
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
