package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/server/models"
	"github.com/dmitrijs2005/daybook/internal/server/news"
	"github.com/dmitrijs2005/daybook/internal/server/services"
	"github.com/stretchr/testify/require"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- fakes ---

type fakeUsers struct {
	session *services.Session
	err     error

	gotUser       string
	gotCredential string

	tokens map[string]string
}

func (f *fakeUsers) Register(ctx context.Context, username, credential string) (*services.Session, error) {
	f.gotUser, f.gotCredential = username, credential
	return f.session, f.err
}

func (f *fakeUsers) Login(ctx context.Context, username, credential string) (*services.Session, error) {
	f.gotUser, f.gotCredential = username, credential
	return f.session, f.err
}

func (f *fakeUsers) UserIDFromToken(token string) (string, error) {
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return "", common.ErrInvalidToken
}

type fakeEntries struct {
	items []*models.Entry
	entry *models.Entry
	err   error
	panic bool

	gotOwner string
	gotID    string
	gotTitle string
}

func (f *fakeEntries) List(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	if f.panic {
		panic("kaboom")
	}
	f.gotOwner = ownerID
	return f.items, f.err
}

func (f *fakeEntries) Create(ctx context.Context, ownerID, title, content string) (*models.Entry, error) {
	f.gotOwner, f.gotTitle = ownerID, title
	return f.entry, f.err
}

func (f *fakeEntries) Update(ctx context.Context, ownerID, entryID, title, content string) (*models.Entry, error) {
	f.gotOwner, f.gotID, f.gotTitle = ownerID, entryID, title
	return f.entry, f.err
}

func (f *fakeEntries) Delete(ctx context.Context, ownerID, entryID string) error {
	f.gotOwner, f.gotID = ownerID, entryID
	return f.err
}

type fakeHabits struct {
	items []*models.Habit
	habit *models.Habit
	err   error

	gotOwner string
	gotID    string
	gotDate  string
}

func (f *fakeHabits) List(ctx context.Context, ownerID string) ([]*models.Habit, error) {
	f.gotOwner = ownerID
	return f.items, f.err
}

func (f *fakeHabits) Create(ctx context.Context, ownerID, name string) (*models.Habit, error) {
	f.gotOwner = ownerID
	return f.habit, f.err
}

func (f *fakeHabits) Toggle(ctx context.Context, ownerID, habitID, date string) (*models.Habit, error) {
	f.gotOwner, f.gotID, f.gotDate = ownerID, habitID, date
	return f.habit, f.err
}

func (f *fakeHabits) Delete(ctx context.Context, ownerID, habitID string) error {
	f.gotOwner, f.gotID = ownerID, habitID
	return f.err
}

type fakePreferences struct {
	category string
	err      error

	gotUser     string
	gotCategory string
}

func (f *fakePreferences) Get(ctx context.Context, userID string) (*services.Preferences, error) {
	f.gotUser = userID
	if f.err != nil {
		return nil, f.err
	}
	return &services.Preferences{NewsCategory: f.category}, nil
}

func (f *fakePreferences) Set(ctx context.Context, userID, newsCategory string) error {
	f.gotUser, f.gotCategory = userID, newsCategory
	return f.err
}

type fakeFeedback struct {
	err     error
	gotName string
	gotMsg  string
}

func (f *fakeFeedback) Submit(ctx context.Context, name, email, message string) error {
	f.gotName, f.gotMsg = name, message
	return f.err
}

type fakeNews struct {
	articles    []news.Article
	err         error
	gotCategory string
}

func (f *fakeNews) Fetch(ctx context.Context, category string) ([]news.Article, error) {
	f.gotCategory = category
	return f.articles, f.err
}

// --- harness ---

func fullServices() Services {
	return Services{
		Users:       &fakeUsers{},
		Entries:     &fakeEntries{},
		Habits:      &fakeHabits{},
		Preferences: &fakePreferences{},
		Feedback:    &fakeFeedback{},
		News:        &fakeNews{},
	}
}

func newTestServer(svc Services) *HTTPServer {
	return NewHTTPServer("127.0.0.1:0", logging.Nop{}, svc, NewMetrics(), "/metrics")
}

func do(t *testing.T, h http.Handler, method, target string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[errorBody](t, rec).Error
}
