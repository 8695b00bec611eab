package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelina-cafes/cafewifi/internal/middleware"
	"github.com/avelina-cafes/cafewifi/internal/view"
)

// ErrorHandler renders every failed request as the HTML error page
// instead of echo's default JSON body. Client errors keep echo's
// message; internal errors are logged and replaced with a generic one
// so nothing leaks into the page.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
		msg = "Something went wrong on our side."
	}

	user, _ := middleware.CurrentUser(c)
	page := view.ErrorPage{Base: view.NewBase(c, msg, user), Status: code, Message: msg}
	if rerr := c.Render(code, "error", page); rerr != nil {
		log.Printf("render error page: %v", rerr)
		_ = c.String(code, msg)
	}
}
