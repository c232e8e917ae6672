package api

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/daybook/internal/common"
)

// ownerID resolves the requesting user: an explicit user_id (body value
// first, then query string) wins; otherwise an Authorization bearer token
// is verified. A present but invalid token is an error, not an absence.
func (s *HTTPServer) ownerID(r *http.Request, fromBody string) (string, error) {
	if fromBody != "" {
		return fromBody, nil
	}
	if q := r.URL.Query().Get("user_id"); q != "" {
		return q, nil
	}

	header := r.Header.Get(common.AccessTokenHeaderName)
	if header == "" {
		return "", common.ErrorUnauthorized
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", common.ErrInvalidToken
	}

	return s.svc.Users.UserIDFromToken(strings.TrimSpace(token))
}
