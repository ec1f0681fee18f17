package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/data/entity"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSessionRepo struct {
	sessions map[string]*entity.Session
}

func (s *stubSessionRepo) Create(_ context.Context, session *entity.Session) error {
	s.sessions[session.Token.String()] = session
	return nil
}

func (s *stubSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	session, ok := s.sessions[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (s *stubSessionRepo) Revoke(_ context.Context, token string) error {
	if session, ok := s.sessions[token]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (s *stubSessionRepo) RevokeAllUserSessions(_ context.Context, _ uuid.UUID) error { return nil }
func (s *stubSessionRepo) CleanExpiredSessions(_ context.Context) error               { return nil }

func newStubSession(role entity.UserRole, expiresAt time.Time) (*stubSessionRepo, *entity.Session) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     uuid.New(),
		Token:      uuid.New(),
		Role:       role,
		ExpiresAt:  expiresAt,
	}
	repo := &stubSessionRepo{sessions: map[string]*entity.Session{
		session.Token.String(): session,
	}}
	return repo, session
}

func okHandler(t *testing.T, wantUserID uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok, "handler must see the authenticated user")
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingToken(t *testing.T) {
	repo, _ := newStubSession(entity.RoleBuyer, time.Now().Add(time.Hour))
	mw := Authenticate(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateCookie(t *testing.T) {
	repo, session := newStubSession(entity.RoleBuyer, time.Now().Add(time.Hour))
	mw := Authenticate(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token.String()})
	rec := httptest.NewRecorder()
	mw(okHandler(t, session.UserID)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateBearerFallback(t *testing.T) {
	repo, session := newStubSession(entity.RoleBuyer, time.Now().Add(time.Hour))
	mw := Authenticate(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token.String())
	rec := httptest.NewRecorder()
	mw(okHandler(t, session.UserID)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateExpiredSession(t *testing.T) {
	repo, session := newStubSession(entity.RoleBuyer, time.Now().Add(-time.Minute))
	mw := Authenticate(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token.String()})
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRevokedSession(t *testing.T) {
	repo, session := newStubSession(entity.RoleBuyer, time.Now().Add(time.Hour))
	require.NoError(t, repo.Revoke(context.Background(), session.Token.String()))
	mw := Authenticate(repo, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token.String()})
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleAllows(t *testing.T) {
	mw := RequireRole(zap.NewNop(), entity.RoleSeller, entity.RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	ctx := utils.SetUserContext(req.Context(), uuid.New(), string(entity.RoleSeller))
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})).ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequireRoleRejectsAuthenticatedWrongRole(t *testing.T) {
	mw := RequireRole(zap.NewNop(), entity.RoleSeller, entity.RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	ctx := utils.SetUserContext(req.Context(), uuid.New(), string(entity.RoleBuyer))
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req.WithContext(ctx))

	// Authenticated but underprivileged is 403, not 401
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	mw := RequireRole(zap.NewNop(), entity.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/requests", nil)
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
