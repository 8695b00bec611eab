package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/avelina-cafes/cafewifi/internal/model"
	"github.com/avelina-cafes/cafewifi/internal/repository"
	"github.com/avelina-cafes/cafewifi/internal/session"
	"github.com/avelina-cafes/cafewifi/internal/utils"
	"github.com/avelina-cafes/cafewifi/internal/view"
)

// SessionCookie is the browser cookie carrying the signed session
// token. The auth handlers set and clear it; LoadUser reads it.
const SessionCookie = "cafewifi_session"

const userContextKey = "current_user"

// LoadUser returns middleware that resolves the session cookie into
// the signed-in *model.User and stores it in the request context for
// CurrentUser. Resolution never fails the request: a missing,
// tampered, expired, or logged-out token just leaves the visitor
// anonymous. The token signature is checked first, then the session
// must still exist server-side, so logout genuinely invalidates a
// stolen cookie.
func LoadUser(store session.Store, users *repository.UserRepo, secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookie)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			claims, err := utils.ParseSessionToken(secret, ck.Value)
			if err != nil {
				return next(c)
			}
			ctx := c.Request().Context()
			sess, err := store.Get(ctx, claims.SessionID)
			if err != nil || sess.UserID != claims.UserID {
				return next(c)
			}
			user, err := users.GetByID(ctx, sess.UserID)
			if err != nil {
				return next(c)
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by LoadUser, or false for an
// anonymous request.
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(userContextKey).(*model.User)
	return u, ok && u != nil
}

// RequireLogin guards a route. Anonymous visitors are redirected to
// the login page with the requested destination preserved in ?next,
// so a successful login can send them back where they were headed.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := CurrentUser(c); ok {
			return next(c)
		}
		view.AddFlash(c, "Please log in to access this page.", "info")
		return view.Redirect(c, http.StatusFound,
			"/login?next="+url.QueryEscape(c.Request().RequestURI))
	}
}
