package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/dbx"
	"github.com/dmitrijs2005/daybook/internal/server/models"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// HabitService manages habits and their completion dates.
type HabitService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHabitService(db *sql.DB, repomanager repomanager.RepositoryManager) *HabitService {
	return &HabitService{db: db, repomanager: repomanager}
}

func (s *HabitService) List(ctx context.Context, ownerID string) ([]*models.Habit, error) {
	if ownerID == "" {
		return nil, common.ErrorInvalidInput
	}

	repo := s.repomanager.Habits(s.db)

	items, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing habits: %w", err)
	}
	return items, nil
}

// Create stores a habit with no completed dates. A blank name yields
// common.ErrorInvalidInput.
func (s *HabitService) Create(ctx context.Context, ownerID, name string) (*models.Habit, error) {
	if ownerID == "" || strings.TrimSpace(name) == "" {
		return nil, common.ErrorInvalidInput
	}

	habit := &models.Habit{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Name:           name,
		CompletedDates: []string{},
	}

	repo := s.repomanager.Habits(s.db)

	habit, err := repo.Create(ctx, habit)
	if err != nil {
		return nil, fmt.Errorf("error creating habit: %w", err)
	}
	return habit, nil
}

// Toggle flips date in the habit's completed set: present dates are
// removed, absent ones added. The read and the write share one transaction
// with the habit row locked, so concurrent toggles cannot drop a flip.
// date must be YYYY-MM-DD.
func (s *HabitService) Toggle(ctx context.Context, ownerID, habitID, date string) (*models.Habit, error) {
	if ownerID == "" || date == "" {
		return nil, common.ErrorInvalidInput
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", common.ErrorInvalidInput, date)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Habit, error) {
		repo := s.repomanager.Habits(tx)

		h, err := repo.GetForUpdate(ctx, ownerID, habitID)
		if err != nil {
			return nil, fmt.Errorf("error loading habit: %w", err)
		}

		h.Toggle(date)

		if err := repo.SetCompletedDates(ctx, ownerID, habitID, h.CompletedDates); err != nil {
			return nil, fmt.Errorf("error saving habit: %w", err)
		}
		return h, nil
	})
}

func (s *HabitService) Delete(ctx context.Context, ownerID, habitID string) error {
	if ownerID == "" {
		return common.ErrorInvalidInput
	}

	repo := s.repomanager.Habits(s.db)

	if err := repo.Delete(ctx, ownerID, habitID); err != nil {
		return fmt.Errorf("error deleting habit: %w", err)
	}
	return nil
}
