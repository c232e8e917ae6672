package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/dbx"
	"github.com/dmitrijs2005/daybook/internal/server/models"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// EntryService manages diary entries. Every operation is scoped to one
// owner; foreign entries behave exactly like missing ones.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	randomIcon  func() string
}

func NewEntryService(db *sql.DB, repomanager repomanager.RepositoryManager) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: repomanager,
		randomIcon:  models.RandomIcon,
	}
}

// List returns the owner's entries, newest first. An owner with no entries
// gets an empty slice.
func (s *EntryService) List(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	if ownerID == "" {
		return nil, common.ErrorInvalidInput
	}

	repo := s.repomanager.Entries(s.db)

	items, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return items, nil
}

// Create stores a new entry with a random icon. Title and content may be empty.
func (s *EntryService) Create(ctx context.Context, ownerID, title, content string) (*models.Entry, error) {
	if ownerID == "" {
		return nil, common.ErrorInvalidInput
	}

	entry := &models.Entry{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Title:   title,
		Content: content,
		Icon:    s.randomIcon(),
	}

	repo := s.repomanager.Entries(s.db)

	entry, err := repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}
	return entry, nil
}

// Update overwrites title and content of an owned entry.
func (s *EntryService) Update(ctx context.Context, ownerID, entryID, title, content string) (*models.Entry, error) {
	if ownerID == "" {
		return nil, common.ErrorInvalidInput
	}

	repo := s.repomanager.Entries(s.db)

	entry, err := repo.Update(ctx, ownerID, entryID, title, content)
	if err != nil {
		return nil, fmt.Errorf("error updating entry: %w", err)
	}
	return entry, nil
}

func (s *EntryService) Delete(ctx context.Context, ownerID, entryID string) error {
	if ownerID == "" {
		return common.ErrorInvalidInput
	}

	repo := s.repomanager.Entries(s.db)

	if err := repo.Delete(ctx, ownerID, entryID); err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}
	return nil
}

// BackfillIcons gives every icon-less entry a random icon and returns how
// many entries were touched. The whole pass is one transaction.
func (s *EntryService) BackfillIcons(ctx context.Context) (int, error) {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (int, error) {
		repo := s.repomanager.Entries(tx)

		items, err := repo.ListWithoutIcon(ctx)
		if err != nil {
			return 0, fmt.Errorf("error listing entries without icon: %w", err)
		}

		for _, e := range items {
			if err := repo.SetIcon(ctx, e.ID, s.randomIcon()); err != nil {
				return 0, fmt.Errorf("error setting icon of entry %s: %w", e.ID, err)
			}
		}
		return len(items), nil
	})
}
