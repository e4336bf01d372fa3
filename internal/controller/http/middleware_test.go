package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapis-app/backend/internal/model"
)

type stubSessions struct {
	sessions map[int64]model.SessionContext
}

func (s *stubSessions) ResolveSession(_ context.Context, telegramID int64) (model.SessionContext, error) {
	return s.sessions[telegramID], nil
}

func resolveThrough(t *testing.T, header string) (*httptest.ResponseRecorder, model.SessionContext) {
	t.Helper()

	sessions := &stubSessions{sessions: map[int64]model.SessionContext{
		42: {UserID: 42, Role: model.RoleSpecialist},
	}}

	var seen model.SessionContext
	next := func(c echo.Context) error {
		seen = sessionFrom(c)
		return c.NoContent(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("X-Telegram-User-Id", header)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, SessionResolver(sessions)(next)(c))
	return rec, seen
}

func TestSessionResolver(t *testing.T) {
	rec, sess := resolveThrough(t, "42")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, model.RoleSpecialist, sess.Role)
}

func TestSessionResolverMissingHeader(t *testing.T) {
	rec, _ := resolveThrough(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionResolverBadHeader(t *testing.T) {
	rec, _ := resolveThrough(t, "не-число")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
