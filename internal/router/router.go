// Package router wires the application's routes onto an Echo
// instance. All form posts go through the CSRF middleware, every
// request resolves the session cookie, and the mutating pages sit
// behind the login guard.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avelina-cafes/cafewifi/internal/handler"
	"github.com/avelina-cafes/cafewifi/internal/middleware"
	"github.com/avelina-cafes/cafewifi/internal/repository"
	"github.com/avelina-cafes/cafewifi/internal/session"
)

// Register sets up all routes. LoadUser runs globally so templates can
// render the right navigation for anonymous and signed-in visitors
// alike; RequireLogin guards only the pages that mutate state.
func Register(e *echo.Echo, cafes *handler.CafeHandler, auth *handler.AuthHandler,
	store session.Store, users *repository.UserRepo, secret []byte) {

	e.GET("/healthz", handler.Health)

	e.Use(middleware.LoadUser(store, users, secret))
	e.Use(echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "form:csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	// public pages
	e.GET("/", cafes.Index)
	e.GET("/cafe/:id", cafes.Show)
	e.GET("/signup", auth.Signup)
	e.POST("/signup", auth.Signup)
	e.GET("/login", auth.Login)
	e.POST("/login", auth.Login)

	// signed-in pages
	e.GET("/logout", auth.Logout, middleware.RequireLogin)
	e.GET("/edit_profile", auth.EditProfile, middleware.RequireLogin)
	e.POST("/edit_profile", auth.EditProfile, middleware.RequireLogin)
	e.GET("/cafe/add", cafes.Add, middleware.RequireLogin)
	e.POST("/cafe/add", cafes.Add, middleware.RequireLogin)
	e.GET("/cafe/:id/edit", cafes.Edit, middleware.RequireLogin)
	e.POST("/cafe/:id/edit", cafes.Edit, middleware.RequireLogin)
	e.GET("/cafe/:id/delete", cafes.Delete, middleware.RequireLogin)
	e.POST("/cafe/:id/delete", cafes.Delete, middleware.RequireLogin)
}
