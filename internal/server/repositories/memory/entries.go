package memory

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/server/models"
)

type EntryRepository struct {
	s *store
}

func (r *EntryRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	stored := *entry
	r.s.entries = append(r.s.entries, &stored)
	return entry, nil
}

// ListByOwner returns copies newest first; ties keep reverse insertion order.
func (r *EntryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.Entry, 0)
	for i := len(r.s.entries) - 1; i >= 0; i-- {
		if e := r.s.entries[i]; e.OwnerID == ownerID {
			c := *e
			result = append(result, &c)
		}
	}
	slices.SortStableFunc(result, func(a, b *models.Entry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

func (r *EntryRepository) Update(ctx context.Context, ownerID, entryID, title, content string) (*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.entries {
		if e.ID == entryID && e.OwnerID == ownerID {
			e.Title = title
			e.Content = content
			c := *e
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *EntryRepository) Delete(ctx context.Context, ownerID, entryID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, e := range r.s.entries {
		if e.ID == entryID && e.OwnerID == ownerID {
			r.s.entries = slices.Delete(r.s.entries, i, i+1)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *EntryRepository) ListWithoutIcon(ctx context.Context) ([]*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*models.Entry, 0)
	for _, e := range r.s.entries {
		if e.Icon == "" {
			c := *e
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *EntryRepository) SetIcon(ctx context.Context, entryID, icon string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.entries {
		if e.ID == entryID {
			e.Icon = icon
		}
	}
	return nil
}
