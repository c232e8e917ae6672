package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/daybook/internal/dbx"
	"github.com/dmitrijs2005/daybook/internal/server/models"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/entries"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/habits"
	usersrepo "github.com/dmitrijs2005/daybook/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	created   *models.User
	createErr error

	getOut *models.User
	getErr error

	updatedID       string
	updatedCategory string
	updateHit       bool
	updateErr       error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.CreatedAt = time.Now()
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) UpdateNewsCategory(ctx context.Context, id, category string) (bool, error) {
	f.updatedID, f.updatedCategory = id, category
	return f.updateHit, f.updateErr
}

type fakeEntriesRepo struct {
	createIn  *models.Entry
	createErr error

	listOut []*models.Entry
	listErr error

	updateOut *models.Entry
	updateErr error

	deleteErr error

	withoutIcon    []*models.Entry
	withoutIconErr error
	setIcon        map[string]string
	setIconErr     error
}

func (f *fakeEntriesRepo) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	f.createIn = e
	if f.createErr != nil {
		return nil, f.createErr
	}
	return e, nil
}

func (f *fakeEntriesRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	return f.listOut, f.listErr
}

func (f *fakeEntriesRepo) Update(ctx context.Context, ownerID, entryID, title, content string) (*models.Entry, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeEntriesRepo) Delete(ctx context.Context, ownerID, entryID string) error {
	return f.deleteErr
}

func (f *fakeEntriesRepo) ListWithoutIcon(ctx context.Context) ([]*models.Entry, error) {
	return f.withoutIcon, f.withoutIconErr
}

func (f *fakeEntriesRepo) SetIcon(ctx context.Context, entryID, icon string) error {
	if f.setIconErr != nil {
		return f.setIconErr
	}
	if f.setIcon == nil {
		f.setIcon = map[string]string{}
	}
	f.setIcon[entryID] = icon
	return nil
}

type fakeHabitsRepo struct {
	createErr error

	getOut *models.Habit
	getErr error

	saved   []string
	saveErr error

	deleteErr error
}

func (f *fakeHabitsRepo) Create(ctx context.Context, h *models.Habit) (*models.Habit, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return h, nil
}

func (f *fakeHabitsRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Habit, error) {
	return []*models.Habit{}, nil
}

func (f *fakeHabitsRepo) GetForUpdate(ctx context.Context, ownerID, habitID string) (*models.Habit, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeHabitsRepo) SetCompletedDates(ctx context.Context, ownerID, habitID string, dates []string) error {
	f.saved = dates
	return f.saveErr
}

func (f *fakeHabitsRepo) Delete(ctx context.Context, ownerID, habitID string) error {
	return f.deleteErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	e *fakeEntriesRepo
	h *fakeHabitsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) Entries(db dbx.DBTX) entries.Repository      { return m.e }
func (m *fakeRepoManager) Habits(db dbx.DBTX) habits.Repository        { return m.h }
