package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelina-cafes/cafewifi/internal/config"
	"github.com/avelina-cafes/cafewifi/internal/form"
	"github.com/avelina-cafes/cafewifi/internal/middleware"
	"github.com/avelina-cafes/cafewifi/internal/repository"
	"github.com/avelina-cafes/cafewifi/internal/session"
	"github.com/avelina-cafes/cafewifi/internal/utils"
	"github.com/avelina-cafes/cafewifi/internal/view"
)

// AuthHandler bundles dependencies for the account pages: signup,
// login, logout, and profile editing.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Sessions session.Store
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, sessions session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Sessions: sessions}
}

// timingDummyHash gives unknown-email logins a real bcrypt comparison
// so both failure paths cost about the same and account existence does
// not leak through response timing.
var timingDummyHash, _ = utils.HashPassword("cafewifi timing pad", 0)

// Signup registers a new account and sends the visitor to the login
// page. A duplicate email re-shows the form with a warning and leaves
// the existing account untouched.
func (h *AuthHandler) Signup(c echo.Context) error {
	f := &form.SignupForm{}
	var errs form.Errors

	if c.Request().Method == http.MethodPost {
		values, err := c.FormParams()
		if err != nil {
			return echo.ErrBadRequest
		}
		f, errs = form.DecodeSignupForm(values)
		if len(errs) == 0 {
			hash, err := utils.HashPassword(f.Password, h.Cfg.BcryptCost)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			_, err = h.Users.Create(ctx, f.Email, hash, f.Name)
			switch {
			case errors.Is(err, repository.ErrEmailExists):
				view.AddFlash(c, "User with this email already exists", "danger")
				return view.Redirect(c, http.StatusFound, "/signup")
			case err != nil:
				return err
			}
			return view.Redirect(c, http.StatusFound, "/login")
		}
	}

	user, _ := middleware.CurrentUser(c)
	return c.Render(http.StatusOK, "form", view.FormPage{
		Base:    view.NewBase(c, "Signup", user),
		Heading: "Signup",
		Action:  "/signup",
		Fields:  view.SignupFields(f, errs),
		Buttons: []view.Button{{Label: "Signup"}},
	})
}

// Login establishes a session. On success the visitor goes to the
// destination preserved in ?next when the login guard sent them here,
// otherwise to the listing page.
func (h *AuthHandler) Login(c echo.Context) error {
	next := safeNext(c.QueryParam("next"))
	f := &form.LoginForm{}
	var errs form.Errors

	if c.Request().Method == http.MethodPost {
		values, err := c.FormParams()
		if err != nil {
			return echo.ErrBadRequest
		}
		f, errs = form.DecodeLoginForm(values)
		if len(errs) == 0 {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			user, err := h.Users.GetByEmail(ctx, f.Email)
			switch {
			case errors.Is(err, repository.ErrUserNotFound):
				utils.VerifyPassword(timingDummyHash, f.Password)
				view.AddFlash(c, "User with this email does not exist", "danger")
			case err != nil:
				return err
			case !utils.VerifyPassword(user.PasswordHash, f.Password):
				view.AddFlash(c, "Password is incorrect", "danger")
			default:
				sess, err := h.Sessions.Create(ctx, user.ID, h.Cfg.SessionTTL)
				if err != nil {
					return err
				}
				token, err := utils.NewSessionToken(h.Cfg.SessionSecret, sess.ID, user.ID, sess.ExpiresAt)
				if err != nil {
					return err
				}
				setSessionCookie(c, token, sess.ExpiresAt)
				if next != "" {
					return view.Redirect(c, http.StatusFound, next)
				}
				return view.Redirect(c, http.StatusFound, "/")
			}
		}
	}

	action := "/login"
	if next != "" {
		action += "?next=" + url.QueryEscape(next)
	}
	user, _ := middleware.CurrentUser(c)
	return c.Render(http.StatusOK, "form", view.FormPage{
		Base:    view.NewBase(c, "Login", user),
		Heading: "Login",
		Action:  action,
		Fields:  view.LoginFields(f, errs),
		Buttons: []view.Button{{Label: "Login"}},
	})
}

// Logout deletes the server-side session, clears the cookie, and
// returns the visitor to the page they came from.
func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(middleware.SessionCookie); err == nil && ck.Value != "" {
		if claims, err := utils.ParseSessionToken(h.Cfg.SessionSecret, ck.Value); err == nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			// best effort: the cookie is cleared either way
			_ = h.Sessions.Delete(ctx, claims.SessionID)
		}
	}
	clearSessionCookie(c)

	target := c.Request().Referer()
	if target == "" {
		target = "/"
	}
	return view.Redirect(c, http.StatusFound, target)
}

// EditProfile changes the signed-in user's display name.
func (h *AuthHandler) EditProfile(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.ErrUnauthorized
	}

	f := &form.ProfileForm{}
	var errs form.Errors
	if c.Request().Method == http.MethodPost {
		values, err := c.FormParams()
		if err != nil {
			return echo.ErrBadRequest
		}
		f, errs = form.DecodeProfileForm(values)
		if len(errs) == 0 {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			if err := h.Users.UpdateName(ctx, user.ID, f.Name); err != nil {
				return err
			}
			return view.Redirect(c, http.StatusFound, "/")
		}
	}

	return c.Render(http.StatusOK, "form", view.FormPage{
		Base:    view.NewBase(c, "Edit name", user),
		Heading: "Edit name",
		Action:  "/edit_profile",
		Fields:  view.ProfileFields(f, errs),
		Buttons: []view.Button{{Label: "Apply changes"}},
	})
}

// safeNext keeps post-login redirects on this site: only absolute
// paths pass, so a crafted ?next cannot bounce the visitor to another
// origin.
func safeNext(target string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") {
		return target
	}
	return ""
}

func setSessionCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
