package habits

import (
	"context"

	"github.com/dmitrijs2005/daybook/internal/server/models"
)

// Repository persists habits. Lookups, updates and deletes are scoped by both
// habit ID and owner ID.
type Repository interface {
	Create(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Habit, error)
	// GetForUpdate loads an owned habit and, inside a transaction, locks its
	// row until commit.
	GetForUpdate(ctx context.Context, ownerID, habitID string) (*models.Habit, error)
	SetCompletedDates(ctx context.Context, ownerID, habitID string, dates []string) error
	Delete(ctx context.Context, ownerID, habitID string) error
}
