// Package view renders the server-side HTML pages. Templates are
// embedded in the binary and served through echo's Renderer contract;
// handlers hand over typed page structs, never raw maps, so a typo in
// a template field is caught by the render tests.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/avelina-cafes/cafewifi/internal/form"
	"github.com/avelina-cafes/cafewifi/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded template set.
// Parsing happens once at startup; a broken template is a programming
// error and panics there rather than on the first request.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{templates: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Base carries the chrome every page needs: the signed-in user (nil
// for anonymous visitors), one-shot flashes, and the anti-forgery
// token the form templates echo back.
type Base struct {
	Title   string
	User    *model.User
	Flashes []Flash
	CSRF    string
}

// NewBase collects the per-request page chrome. The user is passed in
// explicitly; handlers already resolved it for their own checks.
func NewBase(c echo.Context, title string, user *model.User) Base {
	token, _ := c.Get("csrf").(string)
	return Base{Title: title, User: user, Flashes: CollectFlashes(c), CSRF: token}
}

// IndexPage lists every café in the directory.
type IndexPage struct {
	Base
	Cafes []*model.Cafe
}

// CafePage shows one café. MapEmbedURL is built server-side from
// trusted parts, hence the pre-approved URL type; it stays empty when
// no maps key is configured and the template falls back to the café's
// own map link.
type CafePage struct {
	Base
	Cafe        *model.Cafe
	MapEmbedURL template.URL
}

// NewCafePage builds the detail page, deriving the embedded map query
// from the café's name and location.
func NewCafePage(base Base, cafe *model.Cafe, mapsAPIKey string) CafePage {
	p := CafePage{Base: base, Cafe: cafe}
	if mapsAPIKey != "" {
		q := url.QueryEscape(cafe.Name + "," + cafe.Location)
		p.MapEmbedURL = template.URL(fmt.Sprintf(
			"https://www.google.com/maps/embed/v1/place?key=%s&q=%s",
			url.QueryEscape(mapsAPIKey), q))
	}
	return p
}

// Field is one control of a rendered form. Every form in the app goes
// through the same template, driven by a field list in display order.
type Field struct {
	Name    string
	Label   string
	Type    string // text, url, email, password, select, checkbox
	Value   string
	Checked bool
	Options []string
	Error   string
}

// Button is a submit control. Name is set only when the handler needs
// to know which button was pressed, as on the delete confirmation.
type Button struct {
	Name  string
	Label string
}

// FormPage renders any of the app's forms: heading, controls, submit
// buttons, posting back to Action.
type FormPage struct {
	Base
	Heading string
	Action  string
	Fields  []Field
	Buttons []Button
}

// ErrorPage is what the error handler renders for any failed request.
type ErrorPage struct {
	Base
	Status  int
	Message string
}

// CafeFields lays out the add/edit café form.
func CafeFields(f *form.CafeForm, errs form.Errors) []Field {
	return []Field{
		{Name: "name", Label: "Name", Type: "text", Value: f.Name, Error: errs["name"]},
		{Name: "map_url", Label: "Map URL", Type: "url", Value: f.MapURL, Error: errs["map_url"]},
		{Name: "img_url", Label: "Image URL", Type: "url", Value: f.ImgURL, Error: errs["img_url"]},
		{Name: "location", Label: "Location", Type: "text", Value: f.Location, Error: errs["location"]},
		{Name: "has_sockets", Label: "Has power sockets", Type: "checkbox", Checked: f.HasSockets},
		{Name: "has_wifi", Label: "Has WiFi", Type: "checkbox", Checked: f.HasWifi},
		{Name: "can_take_calls", Label: "Can take calls", Type: "checkbox", Checked: f.CanTakeCalls},
		{Name: "has_toilet", Label: "Has toilet", Type: "checkbox", Checked: f.HasToilet},
		{Name: "seats", Label: "How many seats", Type: "select", Value: f.Seats, Options: model.SeatChoices, Error: errs["seats"]},
		{Name: "coffee_price", Label: "Coffee price (£)", Type: "text", Value: f.CoffeePrice, Error: errs["coffee_price"]},
	}
}

// SignupFields lays out the registration form. Passwords are never
// echoed back into the page.
func SignupFields(f *form.SignupForm, errs form.Errors) []Field {
	return []Field{
		{Name: "email", Label: "Email", Type: "email", Value: f.Email, Error: errs["email"]},
		{Name: "name", Label: "Name", Type: "text", Value: f.Name, Error: errs["name"]},
		{Name: "password", Label: "Password", Type: "password", Error: errs["password"]},
	}
}

func LoginFields(f *form.LoginForm, errs form.Errors) []Field {
	return []Field{
		{Name: "email", Label: "Email", Type: "email", Value: f.Email, Error: errs["email"]},
		{Name: "password", Label: "Password", Type: "password", Error: errs["password"]},
	}
}

func ProfileFields(f *form.ProfileForm, errs form.Errors) []Field {
	return []Field{
		{Name: "name", Label: "Name", Type: "text", Value: f.Name, Error: errs["name"]},
	}
}
