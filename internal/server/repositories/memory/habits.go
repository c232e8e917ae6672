package memory

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/server/models"
)

type HabitRepository struct {
	s *store
}

func cloneHabit(h *models.Habit) *models.Habit {
	c := *h
	c.CompletedDates = slices.Clone(h.CompletedDates)
	if c.CompletedDates == nil {
		c.CompletedDates = []string{}
	}
	return &c
}

func (r *HabitRepository) Create(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if habit.CompletedDates == nil {
		habit.CompletedDates = []string{}
	}
	habit.CreatedAt = time.Now().UTC()
	r.s.habits = append(r.s.habits, cloneHabit(habit))
	return habit, nil
}

func (r *HabitRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Habit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.Habit, 0)
	for _, h := range r.s.habits {
		if h.OwnerID == ownerID {
			result = append(result, cloneHabit(h))
		}
	}
	return result, nil
}

// GetForUpdate does not lock the habit. The store mutex covers this call
// only, so a following SetCompletedDates may race another toggle.
func (r *HabitRepository) GetForUpdate(ctx context.Context, ownerID, habitID string) (*models.Habit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, h := range r.s.habits {
		if h.ID == habitID && h.OwnerID == ownerID {
			return cloneHabit(h), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *HabitRepository) SetCompletedDates(ctx context.Context, ownerID, habitID string, dates []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, h := range r.s.habits {
		if h.ID == habitID && h.OwnerID == ownerID {
			h.CompletedDates = slices.Clone(dates)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *HabitRepository) Delete(ctx context.Context, ownerID, habitID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, h := range r.s.habits {
		if h.ID == habitID && h.OwnerID == ownerID {
			r.s.habits = slices.Delete(r.s.habits, i, i+1)
			return nil
		}
	}
	return common.ErrorNotFound
}
