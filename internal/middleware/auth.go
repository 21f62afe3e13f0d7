package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chenyu445/toolbox-backend/internal/logger"
	"github.com/chenyu445/toolbox-backend/internal/session"
)

// unexported, collision-proof context keys
type sessionContextKeyType struct{}
type tokenContextKeyType struct{}

var (
	sessionKey = sessionContextKeyType{}
	tokenKey   = tokenContextKeyType{}
)

// SessionFromContext extracts the authenticated session from context.
func SessionFromContext(ctx context.Context) (*session.Data, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Data)
	return s, ok
}

// TokenFromContext extracts the bearer token the session was resolved
// from. Logout needs it to delete the right key.
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok
}

type AuthMiddleware struct {
	Store session.Store
}

func NewAuthMiddleware(store session.Store) *AuthMiddleware {
	return &AuthMiddleware{Store: store}
}

// RequireAuth gates a handler behind a valid bearer session. A pass
// through the gate extends the session's TTL as a side effect, making
// expiry sliding rather than fixed.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Extract bearer token. A missing or non-bearer credential
		// is rejected before touching the store.
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		// 2. Load session. Store existence is authoritative; expiry
		// is the store's TTL.
		sess, err := a.Store.Get(r.Context(), token)
		if err != nil {
			logger.Error("session lookup failed", map[string]any{
				"error": err.Error(),
			})
			writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if sess == nil {
			writeJSONError(w, http.StatusUnauthorized, "Session not found or expired")
			return
		}

		// 3. Slide the expiry window. The session is already proven
		// valid, so a failed refresh only loses the extension.
		if _, err := a.Store.Refresh(r.Context(), token); err != nil {
			logger.Warn("session refresh failed", map[string]any{
				"error": err.Error(),
			})
		}

		// 4. Attach session and token to context.
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		ctx = context.WithValue(ctx, tokenKey, token)

		// 5. Continue request.
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
