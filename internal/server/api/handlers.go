package api

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/server/models"
	"github.com/dmitrijs2005/daybook/internal/server/news"
	"github.com/gorilla/mux"
)

// ---- wire types ----

type authRequest struct {
	Username   string `json:"username"`
	Credential string `json:"credential"`
	Password   string `json:"password"`
}

type authResponse struct {
	Message     string `json:"message"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
}

type entryRequest struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type entryView struct {
	ID      string    `json:"_id"`
	UserID  string    `json:"user_id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
	Icon    string    `json:"icon"`
}

type habitRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
}

type habitView struct {
	ID             string    `json:"_id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	CompletedDates []string  `json:"completed_dates"`
	CreatedAt      time.Time `json:"created_at"`
}

type preferencesRequest struct {
	UserID          string `json:"user_id"`
	NewsCategory    string `json:"news_category"`
	NewsCategoryAlt string `json:"newsCategory"`
}

type preferencesView struct {
	NewsCategory string `json:"news_category"`
}

type feedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type newsView struct {
	Articles []news.Article `json:"articles"`
	Category string         `json:"category"`
}

type healthView struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func toEntryView(e *models.Entry) entryView {
	return entryView{ID: e.ID, UserID: e.OwnerID, Title: e.Title, Content: e.Content, Date: e.CreatedAt, Icon: e.Icon}
}

func toHabitView(h *models.Habit) habitView {
	dates := h.CompletedDates
	if dates == nil {
		dates = []string{}
	}
	return habitView{ID: h.ID, UserID: h.OwnerID, Name: h.Name, CompletedDates: dates, CreatedAt: h.CreatedAt}
}

var (
	entryErrors = errorText{notFound: "Entry not found"}
	habitErrors = errorText{notFound: "Habit not found", invalid: "Invalid date, expected YYYY-MM-DD"}
	userErrors  = errorText{notFound: "User not found"}
)

// ---- auth ----

func (s *HTTPServer) readAuth(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	var req authRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, msgInvalidBody)
		return "", "", false
	}
	credential := req.Credential
	if credential == "" {
		credential = req.Password
	}
	if req.Username == "" || credential == "" {
		s.badRequest(w, "Username and password are required")
		return "", "", false
	}
	return req.Username, credential, true
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	username, credential, ok := s.readAuth(w, r)
	if !ok {
		return
	}

	sess, err := s.svc.Users.Register(r.Context(), username, credential)
	if err != nil {
		s.fail(w, r, err, errorText{})
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Message:     "User created successfully",
		UserID:      sess.UserID,
		Username:    sess.UserName,
		AccessToken: sess.AccessToken,
	})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	username, credential, ok := s.readAuth(w, r)
	if !ok {
		return
	}

	sess, err := s.svc.Users.Login(r.Context(), username, credential)
	if err != nil {
		s.fail(w, r, err, errorText{})
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Message:     "Login successful",
		UserID:      sess.UserID,
		Username:    sess.UserName,
		AccessToken: sess.AccessToken,
	})
}

// ---- entries ----

func (s *HTTPServer) listEntries(w http.ResponseWriter, r *http.Request) {
	owner, err := s.ownerID(r, "")
	if err != nil {
		s.fail(w, r, err, entryErrors)
		return
	}

	items, err := s.svc.Entries.List(r.Context(), owner)
	if err != nil {
		s.fail(w, r, err, entryErrors)
		return
	}

	out := make([]entryView, 0, len(items))
	for _, e := range items {
		out = append(out, toEntryView(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) createEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, msgInvalidBody)
		return
	}
	owner, err := s.ownerID(r, req.UserID)
	if err != nil {
		s.fail(w, r, err, entryErrors)
		return
	}

	e, err := s.svc.Entries.Create(r.Context(), owner, req.Title, req.Content)
	if err != nil {
		s.fail(w, r, err, entryErrors)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryView(e))
}

func (s *HTTPServer) updateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, msgInvalidBody)
		return
	}
	owner, err := s.ownerID(r, req.UserID)
	if err != nil {
		s.fail(w, r, err, entryErrors)
		return
	}

	e, err := s.svc.Entries.Update(r.Context(), owner, mux.Vars(r)["id"], req.Title, req.Content)
	if err != nil {
		s.fail(w, r, err, entryErrors)
		return
	}
	writeJSON(w, http.StatusOK, toEntryView(e))
}

func (s *HTTPServer) deleteEntry(w http.ResponseWriter, r *http.Request) {
	owner, err := s.ownerID(r, "")
	if err != nil {
		s.fail(w, r, err, entryErrors)
		return
	}

	if err := s.svc.Entries.Delete(r.Context(), owner, mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err, entryErrors)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Entry deleted successfully"})
}

// ---- habits ----

func (s *HTTPServer) listHabits(w http.ResponseWriter, r *http.Request) {
	owner, err := s.ownerID(r, "")
	if err != nil {
		s.fail(w, r, err, habitErrors)
		return
	}

	items, err := s.svc.Habits.List(r.Context(), owner)
	if err != nil {
		s.fail(w, r, err, habitErrors)
		return
	}

	out := make([]habitView, 0, len(items))
	for _, h := range items {
		out = append(out, toHabitView(h))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) createHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, msgInvalidBody)
		return
	}
	owner, err := s.ownerID(r, req.UserID)
	if err != nil {
		s.fail(w, r, err, habitErrors)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.badRequest(w, "Name is required")
		return
	}

	h, err := s.svc.Habits.Create(r.Context(), owner, req.Name)
	if err != nil {
		s.fail(w, r, err, errorText{invalid: "Name is required"})
		return
	}
	writeJSON(w, http.StatusCreated, toHabitView(h))
}

func (s *HTTPServer) toggleHabit(w http.ResponseWriter, r *http.Request) {
	var req habitRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, msgInvalidBody)
		return
	}
	owner, err := s.ownerID(r, req.UserID)
	if err != nil {
		s.fail(w, r, err, habitErrors)
		return
	}
	if req.Date == "" {
		s.badRequest(w, "Date is required")
		return
	}

	h, err := s.svc.Habits.Toggle(r.Context(), owner, mux.Vars(r)["id"], req.Date)
	if err != nil {
		s.fail(w, r, err, habitErrors)
		return
	}
	writeJSON(w, http.StatusOK, toHabitView(h))
}

func (s *HTTPServer) deleteHabit(w http.ResponseWriter, r *http.Request) {
	owner, err := s.ownerID(r, "")
	if err != nil {
		s.fail(w, r, err, habitErrors)
		return
	}

	if err := s.svc.Habits.Delete(r.Context(), owner, mux.Vars(r)["id"]); err != nil {
		s.fail(w, r, err, habitErrors)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Habit deleted successfully"})
}

// ---- preferences ----

func (s *HTTPServer) getPreferences(w http.ResponseWriter, r *http.Request) {
	owner, err := s.ownerID(r, "")
	if err != nil {
		s.fail(w, r, err, userErrors)
		return
	}

	p, err := s.svc.Preferences.Get(r.Context(), owner)
	if err != nil {
		s.fail(w, r, err, userErrors)
		return
	}
	writeJSON(w, http.StatusOK, preferencesView{NewsCategory: p.NewsCategory})
}

func (s *HTTPServer) setPreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, msgInvalidBody)
		return
	}
	owner, err := s.ownerID(r, req.UserID)
	if err != nil {
		s.fail(w, r, err, userErrors)
		return
	}

	category := req.NewsCategory
	if category == "" {
		category = req.NewsCategoryAlt
	}

	if err := s.svc.Preferences.Set(r.Context(), owner, category); err != nil {
		s.fail(w, r, err, userErrors)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Preferences updated successfully"})
}

// ---- feedback, news, health ----

func (s *HTTPServer) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := decodeBody(r, &req); err != nil {
		s.badRequest(w, msgInvalidBody)
		return
	}

	err := s.svc.Feedback.Submit(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		s.fail(w, r, err, errorText{invalid: "Message is required", upstream: "Failed to send feedback"})
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Feedback sent successfully"})
}

func (s *HTTPServer) getNews(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = common.DefaultNewsCategory
	}
	if !slices.Contains(news.Categories(), category) {
		s.logger.Debug(r.Context(), "unknown news category, using generic query", "category", category)
	}

	articles, err := s.svc.News.Fetch(r.Context(), category)
	if err != nil {
		s.fail(w, r, err, errorText{upstream: "Failed to fetch news"})
		return
	}
	if articles == nil {
		articles = []news.Article{}
	}
	writeJSON(w, http.StatusOK, newsView{Articles: articles, Category: category})
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthView{Status: "ok", Message: "Server is running"})
}
