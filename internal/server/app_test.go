package server

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/server/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, addr string) (*App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	return &App{
		logger:     logging.Nop{},
		db:         db,
		httpServer: api.NewHTTPServer(addr, logging.Nop{}, api.Services{}, api.NewMetrics(), "/metrics"),
	}, mock
}

func TestApp_Run_ReturnsListenError(t *testing.T) {
	app, mock := newTestApp(t, "127.0.0.1:99999")

	err := app.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_Run_CleanShutdownReturnsNil(t *testing.T) {
	app, mock := newTestApp(t, "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
