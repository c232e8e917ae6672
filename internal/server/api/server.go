// Package api exposes the diary services over JSON/HTTP.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/server/models"
	"github.com/dmitrijs2005/daybook/internal/server/news"
	"github.com/dmitrijs2005/daybook/internal/server/services"
	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, username, credential string) (*services.Session, error)
	Login(ctx context.Context, username, credential string) (*services.Session, error)
	UserIDFromToken(token string) (string, error)
}

type EntryService interface {
	List(ctx context.Context, ownerID string) ([]*models.Entry, error)
	Create(ctx context.Context, ownerID, title, content string) (*models.Entry, error)
	Update(ctx context.Context, ownerID, entryID, title, content string) (*models.Entry, error)
	Delete(ctx context.Context, ownerID, entryID string) error
}

type HabitService interface {
	List(ctx context.Context, ownerID string) ([]*models.Habit, error)
	Create(ctx context.Context, ownerID, name string) (*models.Habit, error)
	Toggle(ctx context.Context, ownerID, habitID, date string) (*models.Habit, error)
	Delete(ctx context.Context, ownerID, habitID string) error
}

type PreferenceService interface {
	Get(ctx context.Context, userID string) (*services.Preferences, error)
	Set(ctx context.Context, userID, newsCategory string) error
}

type FeedbackService interface {
	Submit(ctx context.Context, name, email, message string) error
}

// Services bundles the handlers' dependencies.
type Services struct {
	Users       UserService
	Entries     EntryService
	Habits      HabitService
	Preferences PreferenceService
	Feedback    FeedbackService
	News        news.Fetcher
}

type HTTPServer struct {
	address     string
	logger      logging.Logger
	svc         Services
	metrics     *Metrics
	metricsPath string
}

func NewHTTPServer(address string, l logging.Logger, svc Services, m *Metrics, metricsPath string) *HTTPServer {
	return &HTTPServer{
		address:     address,
		logger:      l.With("module", "http_server"),
		svc:         svc,
		metrics:     m,
		metricsPath: metricsPath,
	}
}

// Router builds the route table with its middleware chain.
func (s *HTTPServer) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware, s.metrics.Middleware)

	r.Handle(s.metricsPath, s.metrics.Handler()).Methods(http.MethodGet)

	a := r.PathPrefix("/api").Subrouter()

	a.HandleFunc("/health", s.health).Methods(http.MethodGet)

	a.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	a.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)

	a.HandleFunc("/entries", s.listEntries).Methods(http.MethodGet)
	a.HandleFunc("/entries", s.createEntry).Methods(http.MethodPost)
	a.HandleFunc("/entries/{id}", s.updateEntry).Methods(http.MethodPut)
	a.HandleFunc("/entries/{id}", s.deleteEntry).Methods(http.MethodDelete)

	a.HandleFunc("/habits", s.listHabits).Methods(http.MethodGet)
	a.HandleFunc("/habits", s.createHabit).Methods(http.MethodPost)
	a.HandleFunc("/habits/{id}/toggle", s.toggleHabit).Methods(http.MethodPost)
	a.HandleFunc("/habits/{id}", s.deleteHabit).Methods(http.MethodDelete)

	a.HandleFunc("/user/preferences", s.getPreferences).Methods(http.MethodGet)
	a.HandleFunc("/user/preferences", s.setPreferences).Methods(http.MethodPost)

	a.HandleFunc("/feedback", s.submitFeedback).Methods(http.MethodPost)
	a.HandleFunc("/news", s.getNews).Methods(http.MethodGet)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	})

	// CORS sits outside the router: preflights match no route method
	return s.recoverMiddleware(corsMiddleware(r))
}

// Run listens on the configured address and serves until ctx is cancelled,
// then drains in-flight requests for up to five seconds.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
