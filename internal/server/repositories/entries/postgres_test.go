package entries

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	entryID    = "0b7e5c4a-1d2f-4a3b-9c8d-7e6f5a4b3c2d"
	iconlessID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

var entryCols = []string{"id", "user_id", "title", "content", "icon", "created_at"}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO entries \(id, user_id, title, content, icon\) VALUES \(\$1, \$2, \$3, \$4, \$5\) RETURNING created_at`).
		WithArgs("e1", "u1", "Day 1", "hello", "pen").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	got, err := repo.Create(context.Background(), &models.Entry{
		ID: "e1", OwnerID: "u1", Title: "Day 1", Content: "hello", Icon: "pen",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at not filled: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO entries`).
		WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &models.Entry{ID: "e1", OwnerID: "u1"})
	if err == nil || !regexp.MustCompile(`db error: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListByOwner_OrdersNewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	rows := sqlmock.NewRows(entryCols).
		AddRow("e2", "u1", "b", "B", "star", t2).
		AddRow("e1", "u1", "a", "A", "pen", t1)

	mock.ExpectQuery(`SELECT id, user_id, title, content, icon, created_at FROM entries WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "e2" || got[1].ID != "e1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListByOwner_EmptyIsNotNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM entries WHERE user_id = \$1`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(entryCols))

	got, err := repo.ListByOwner(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestListByOwner_QueryAndScanErrors(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM entries WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnError(errors.New("qerr"))

	_, err := repo.ListByOwner(context.Background(), "u1")
	if err == nil || !regexp.MustCompile(`failed to select entries: .*qerr`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}

	mock.ExpectQuery(`FROM entries WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow("e1", "u1", "t", "c", "pen", "not-a-time"))

	if _, err := repo.ListByOwner(context.Background(), "u1"); err == nil {
		t.Fatal("expected scan error")
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE entries SET title = \$3, content = \$4 WHERE id = \$1 AND user_id = \$2 RETURNING id, user_id, title, content, icon, created_at`).
		WithArgs(entryID, "u1", "new", "body").
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(entryID, "u1", "new", "body", "pen", created))

	got, err := repo.Update(context.Background(), "u1", entryID, "new", "body")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "new" || got.Content != "body" || got.Icon != "pen" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestUpdate_ForeignOrMissing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE entries SET`).
		WithArgs(entryID, "intruder", "x", "y").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "intruder", entryID, "x", "y")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `DELETE FROM entries WHERE id = \$1 AND user_id = \$2`
	mock.ExpectExec(q).WithArgs(entryID, "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(entryID, "u2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs(entryID, "u1").WillReturnError(errors.New("db err"))
	mock.ExpectExec(q).WithArgs(entryID, "u1").WillReturnResult(sqlmock.NewErrorResult(errors.New("ra err")))

	if err := repo.Delete(context.Background(), "u1", entryID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), "u2", entryID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), "u1", entryID); err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
	if err := repo.Delete(context.Background(), "u1", entryID); err == nil || !regexp.MustCompile(`rows affected error: .*ra err`).MatchString(err.Error()) {
		t.Fatalf("expected rows affected error, got %v", err)
	}
}

func TestListWithoutIconAndSetIcon(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM entries WHERE icon = ''`).
		WillReturnRows(sqlmock.NewRows(entryCols).AddRow(iconlessID, "u1", "old", "text", "", time.Now()))
	mock.ExpectExec(`UPDATE entries SET icon = \$2 WHERE id = \$1`).
		WithArgs(iconlessID, "cloud").
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.ListWithoutIcon(context.Background())
	if err != nil || len(got) != 1 || got[0].ID != iconlessID {
		t.Fatalf("unexpected result: %+v, %v", got, err)
	}
	if err := repo.SetIcon(context.Background(), iconlessID, "cloud"); err != nil {
		t.Fatalf("SetIcon error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNonUUIDEntryIDIssuesNoSQL(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()
	ctx := context.Background()

	if _, err := repo.Update(ctx, "u1", "e1", "x", "y"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("Update: want ErrorNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "u1", "not-a-uuid"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("Delete: want ErrorNotFound, got %v", err)
	}
	if err := repo.SetIcon(ctx, "", "pen"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("SetIcon: want ErrorNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}
