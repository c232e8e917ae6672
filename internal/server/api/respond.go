package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/daybook/internal/common"
)

const (
	msgInternal       = "Internal server error"
	msgInvalidBody    = "Invalid request body"
	msgUserIDRequired = "User ID required"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

// errorText overrides the default client-facing message per error kind.
type errorText struct {
	invalid  string
	notFound string
	upstream string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody reads a JSON object into dst. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorInvalidInput), errors.Is(err, common.ErrorDuplicateUsername):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error, t errorText) string {
	pick := func(custom, fallback string) string {
		if custom != "" {
			return custom
		}
		return fallback
	}

	switch {
	case errors.Is(err, common.ErrorDuplicateUsername):
		return "Username already exists"
	case errors.Is(err, common.ErrorInvalidInput):
		return pick(t.invalid, msgInvalidBody)
	case errors.Is(err, common.ErrorUnauthorized):
		return msgUserIDRequired
	case errors.Is(err, common.ErrorInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, common.ErrTokenExpired):
		return "Token expired"
	case errors.Is(err, common.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, common.ErrorNotFound):
		return pick(t.notFound, "Not found")
	case errors.Is(err, common.ErrorUpstream):
		return pick(t.upstream, "Upstream service unavailable")
	default:
		return msgInternal
	}
}

// fail maps err to a status and an {error} body. Server-side failures are
// logged with the underlying error, which never reaches the client.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error, t errorText) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", routePath(r), "error", err)
	}
	writeJSON(w, status, errorBody{Error: messageFor(err, t)})
}

func (s *HTTPServer) badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
