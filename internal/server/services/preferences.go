package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/repomanager"
)

// Preferences is the user-level settings record.
type Preferences struct {
	NewsCategory string
}

// PreferenceService reads and writes the preferences embedded in the user row.
type PreferenceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPreferenceService(db *sql.DB, repomanager repomanager.RepositoryManager) *PreferenceService {
	return &PreferenceService{db: db, repomanager: repomanager}
}

// Get returns the user's preferences, with common.DefaultNewsCategory when
// none was ever chosen. An unknown user yields common.ErrorNotFound.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*Preferences, error) {
	if userID == "" {
		return nil, common.ErrorInvalidInput
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	category := user.NewsCategory
	if category == "" {
		category = common.DefaultNewsCategory
	}
	return &Preferences{NewsCategory: category}, nil
}

// Set overwrites the news category without checking it against the known
// categories. When no user matches nothing is written and no error is
// returned.
func (s *PreferenceService) Set(ctx context.Context, userID, newsCategory string) error {
	if userID == "" {
		return common.ErrorInvalidInput
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.UpdateNewsCategory(ctx, userID, newsCategory); err != nil {
		return fmt.Errorf("error saving preferences: %w", err)
	}
	return nil
}
