// Package memory holds map-backed repositories that ignore the DBTX they are
// handed. They back service and HTTP tests that run without PostgreSQL.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/daybook/internal/dbx"
	"github.com/dmitrijs2005/daybook/internal/server/models"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/entries"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/habits"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/users"
)

// store is shared by the three repositories of one Manager.
type store struct {
	mu      sync.Mutex
	users   map[string]*models.User
	entries []*models.Entry
	habits  []*models.Habit
}

type Manager struct {
	s *store
}

var _ repomanager.RepositoryManager = (*Manager)(nil)

func NewManager() *Manager {
	return &Manager{s: &store{users: map[string]*models.User{}}}
}

func (m *Manager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *Manager) Users(db dbx.DBTX) users.Repository {
	return &UserRepository{s: m.s}
}

func (m *Manager) Entries(db dbx.DBTX) entries.Repository {
	return &EntryRepository{s: m.s}
}

func (m *Manager) Habits(db dbx.DBTX) habits.Repository {
	return &HabitRepository{s: m.s}
}
