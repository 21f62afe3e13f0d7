package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chenyu445/toolbox-backend/internal/session"
)

type fakeStore struct {
	sessions  map[string]*session.Data
	getErr    error
	refreshed []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]*session.Data{}}
}

func (f *fakeStore) Create(ctx context.Context, userID, openID string) (string, error) {
	token, err := session.GenerateToken()
	if err != nil {
		return "", err
	}
	f.sessions[token] = &session.Data{UserID: userID, OpenID: openID, CreatedAt: 1}
	return token, nil
}

func (f *fakeStore) Get(ctx context.Context, token string) (*session.Data, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.sessions[token], nil
}

func (f *fakeStore) Refresh(ctx context.Context, token string) (bool, error) {
	if _, ok := f.sessions[token]; !ok {
		return false, nil
	}
	f.refreshed = append(f.refreshed, token)
	return true, nil
}

func (f *fakeStore) Delete(ctx context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func TestRequireAuthWithHeaderMissing(t *testing.T) {
	a := NewAuthMiddleware(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handlerCalled := false
	a.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		handlerCalled = true
	})).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, handlerCalled)
	require.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
}

func TestRequireAuthWithHeaderNotBearer(t *testing.T) {
	a := NewAuthMiddleware(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Digest foo")
	rr := httptest.NewRecorder()

	handlerCalled := false
	a.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		handlerCalled = true
	})).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, handlerCalled)
	require.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
}

func TestRequireAuthWithEmptyBearerToken(t *testing.T) {
	a := NewAuthMiddleware(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer ")
	rr := httptest.NewRecorder()

	handlerCalled := false
	a.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		handlerCalled = true
	})).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, handlerCalled)
}

func TestRequireAuthWithUnknownToken(t *testing.T) {
	store := newFakeStore()
	a := NewAuthMiddleware(store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer does-not-exist")
	rr := httptest.NewRecorder()

	handlerCalled := false
	a.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		handlerCalled = true
	})).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.False(t, handlerCalled)
	require.JSONEq(t, `{"error":"Session not found or expired"}`, rr.Body.String())
	require.Empty(t, store.refreshed)
}

func TestRequireAuthWithStoreError(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("redis unavailable")
	a := NewAuthMiddleware(store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rr := httptest.NewRecorder()

	handlerCalled := false
	a.RequireAuth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		handlerCalled = true
	})).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.False(t, handlerCalled)
}

func TestRequireAuthSuccess(t *testing.T) {
	store := newFakeStore()
	token, err := store.Create(context.Background(), "user-1", "OPENID1")
	require.NoError(t, err)

	a := NewAuthMiddleware(store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handlerCalled := false
	a.RequireAuth(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		handlerCalled = true

		sess, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "user-1", sess.UserID)
		require.Equal(t, "OPENID1", sess.OpenID)

		got, ok := TokenFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, token, got)
	})).ServeHTTP(rr, req)

	require.True(t, handlerCalled)
	// every successful pass slides the expiry window
	require.Equal(t, []string{token}, store.refreshed)
}
