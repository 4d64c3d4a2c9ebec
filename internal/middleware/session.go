// Package middleware provides HTTP middlewares for session handling and
// logging.
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionCookieName is the cookie carrying the session's user id.
const SessionCookieName = "userId"

// SessionMaxAge is the lifetime of the session cookie.
const SessionMaxAge = 7 * 24 * time.Hour

// SessionAuth is a middleware that resolves the session cookie.
//
// It reads the userId cookie and, when present and numeric, stores the
// user id in the request context. It never rejects a request itself:
// endpoints that require a session check the context and respond 401
// themselves, while /api/auth/me resolves a missing session to a null
// user.
func SessionAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err == nil {
			if id, err := strconv.ParseInt(cookie.Value, 10, 64); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserIDFromContext extracts the session user id from the request
// context. The second return value is false when no valid session cookie
// accompanied the request.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userKey).(int64)
	return id, ok
}

// SetSessionCookie writes the session cookie for the given user id.
// The cookie is httpOnly with a 7-day expiry and carries the raw user
// identifier as its value.
func SetSessionCookie(w http.ResponseWriter, userID int64, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    strconv.FormatInt(userID, 10),
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
