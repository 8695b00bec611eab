package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelina-cafes/cafewifi/internal/model"
	"github.com/avelina-cafes/cafewifi/internal/repository"
	"github.com/avelina-cafes/cafewifi/internal/session"
	"github.com/avelina-cafes/cafewifi/internal/testutil"
	"github.com/avelina-cafes/cafewifi/internal/utils"
)

var testSecret = []byte("middleware-test-secret")

func probeApp(t *testing.T, dbName string) (*echo.Echo, session.Store, *model.User) {
	t.Helper()
	db := testutil.OpenDB(t, dbName)
	users := repository.NewUserRepo(db)
	store := session.NewMemoryStore()

	user, err := users.Create(context.Background(), "elaine@example.com", "irrelevant-hash", "Elaine")
	require.NoError(t, err)

	e := echo.New()
	e.Use(LoadUser(store, users, testSecret))
	e.GET("/whoami", func(c echo.Context) error {
		if u, ok := CurrentUser(c); ok {
			return c.String(http.StatusOK, u.Name)
		}
		return c.String(http.StatusOK, "anonymous")
	})
	e.GET("/private", func(c echo.Context) error {
		return c.String(http.StatusOK, "secret")
	}, RequireLogin)
	return e, store, user
}

func sessionCookie(t *testing.T, store session.Store, secret []byte, userID int64) *http.Cookie {
	t.Helper()
	sess, err := store.Create(context.Background(), userID, time.Hour)
	require.NoError(t, err)
	tok, err := utils.NewSessionToken(secret, sess.ID, userID, sess.ExpiresAt)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookie, Value: tok}
}

func TestLoadUserResolvesSession(t *testing.T) {
	e, store, user := probeApp(t, "mw_resolve")
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(sessionCookie(t, store, testSecret, user.ID))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "Elaine", rec.Body.String())
}

func TestLoadUserAnonymousWithoutCookie(t *testing.T) {
	e, _, _ := probeApp(t, "mw_anon")
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestLoadUserRejectsTamperedToken(t *testing.T) {
	e, store, user := probeApp(t, "mw_tamper")
	// signed with the wrong secret: signature check must fail closed
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(sessionCookie(t, store, []byte("attacker-secret"), user.ID))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestLoadUserAfterServerSideLogout(t *testing.T) {
	e, store, user := probeApp(t, "mw_logout")
	ck := sessionCookie(t, store, testSecret, user.ID)

	// deleting the stored session invalidates the still-valid token
	claims, err := utils.ParseSessionToken(testSecret, ck.Value)
	require.NoError(t, err)
	require.NoError(t, store.Delete(context.Background(), claims.SessionID))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(ck)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestRequireLoginRedirectsWithNext(t *testing.T) {
	e, _, _ := probeApp(t, "mw_guard")
	req := httptest.NewRequest(http.MethodGet, "/private?draft=1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?next=%2Fprivate%3Fdraft%3D1", rec.Header().Get(echo.HeaderLocation))

	var flashed bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "cafewifi_flash" && ck.Value != "" {
			flashed = true
		}
	}
	assert.True(t, flashed, "guard should queue the log-in notice")
}

func TestRequireLoginPassesAuthenticated(t *testing.T) {
	e, store, user := probeApp(t, "mw_pass")
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(sessionCookie(t, store, testSecret, user.ID))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "secret", rec.Body.String())
}
