package entries

import (
	"context"

	"github.com/dmitrijs2005/daybook/internal/server/models"
)

// Repository persists diary entries. Every lookup, update and delete is
// scoped by both entry ID and owner ID.
type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Entry, error)
	Update(ctx context.Context, ownerID, entryID, title, content string) (*models.Entry, error)
	Delete(ctx context.Context, ownerID, entryID string) error
	ListWithoutIcon(ctx context.Context) ([]*models.Entry, error)
	SetIcon(ctx context.Context, entryID, icon string) error
}
