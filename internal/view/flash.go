package view

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Flash is a one-shot notice surfaced on the next rendered page.
// Category is the bootstrap alert flavour ("danger", "info", ...).
type Flash struct {
	Message  string `json:"m"`
	Category string `json:"c"`
}

const (
	flashCookieName = "cafewifi_flash"
	flashContextKey = "view.flashes"
)

// AddFlash queues a notice for the next rendered page. Queued notices
// are shown by the page the handler renders, or carried across one
// redirect via the flash cookie when the handler ends with Redirect.
func AddFlash(c echo.Context, message, category string) {
	c.Set(flashContextKey, append(queued(c), Flash{Message: message, Category: category}))
}

func queued(c echo.Context) []Flash {
	fs, _ := c.Get(flashContextKey).([]Flash)
	return fs
}

// Redirect flushes queued flashes into the cookie so the target page
// still shows them, then issues the redirect. Anything already in the
// cookie from an earlier redirect is kept.
func Redirect(c echo.Context, code int, target string) error {
	if fs := append(fromCookie(c), queued(c)...); len(fs) > 0 {
		writeFlashCookie(c, fs)
	}
	return c.Redirect(code, target)
}

// CollectFlashes returns everything queued for display and clears the
// cookie. NewBase calls it once per rendered page.
func CollectFlashes(c echo.Context) []Flash {
	fs := append(fromCookie(c), queued(c)...)
	if _, err := c.Cookie(flashCookieName); err == nil {
		c.SetCookie(&http.Cookie{
			Name:     flashCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	c.Set(flashContextKey, []Flash(nil))
	return fs
}

func fromCookie(c echo.Context) []Flash {
	ck, err := c.Cookie(flashCookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	var fs []Flash
	if json.Unmarshal(raw, &fs) != nil {
		return nil
	}
	return fs
}

func writeFlashCookie(c echo.Context, fs []Flash) {
	raw, err := json.Marshal(fs)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
