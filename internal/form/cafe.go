package form

import (
	"net/url"
	"strings"

	"github.com/avelina-cafes/cafewifi/internal/model"
)

// CafeForm carries the add/edit café fields. Seats and CoffeePrice
// stay strings on the form: seats is a choice label and the price is
// validated as an exact decimal, never a float.
type CafeForm struct {
	Name         string `form:"name" validate:"required"`
	MapURL       string `form:"map_url" validate:"required,url"`
	ImgURL       string `form:"img_url" validate:"required,url"`
	Location     string `form:"location" validate:"required"`
	HasSockets   bool   `form:"has_sockets"`
	HasToilet    bool   `form:"has_toilet"`
	HasWifi      bool   `form:"has_wifi"`
	CanTakeCalls bool   `form:"can_take_calls"`
	Seats        string `form:"seats" validate:"required,oneof=0-10 10-20 20-30 30-40 40-50 50+"`
	CoffeePrice  string `form:"coffee_price" validate:"required"`
}

// DecodeCafeForm builds a CafeForm from submitted values and validates
// it. The returned form always reflects what the user typed so the
// template can re-render it; errs is empty when the submission is good.
func DecodeCafeForm(v url.Values) (*CafeForm, Errors) {
	f := &CafeForm{
		Name:         text(v, "name"),
		MapURL:       text(v, "map_url"),
		ImgURL:       text(v, "img_url"),
		Location:     text(v, "location"),
		HasSockets:   checkbox(v, "has_sockets"),
		HasToilet:    checkbox(v, "has_toilet"),
		HasWifi:      checkbox(v, "has_wifi"),
		CanTakeCalls: checkbox(v, "can_take_calls"),
		Seats:        v.Get("seats"),
		CoffeePrice:  text(v, "coffee_price"),
	}
	errs := check(f)
	// The tags only cover presence; the decimal and range rules need
	// the parsed value.
	if _, bad := errs["coffee_price"]; !bad {
		pence, err := ParsePrice(f.CoffeePrice)
		switch {
		case err != nil:
			errs.add("coffee_price", "Not a valid decimal value.")
		case pence < 0:
			errs.add("coffee_price", "Number must be at least 0.")
		}
	}
	return f, errs
}

// Apply copies the form onto a café, normalizing the price into the
// canonical "£n.nn" storage form. Safe only after validation passed,
// except for the empty price which maps back to an empty column.
func (f *CafeForm) Apply(c *model.Cafe) {
	c.Name = f.Name
	c.MapURL = f.MapURL
	c.ImgURL = f.ImgURL
	c.Location = f.Location
	c.HasSockets = f.HasSockets
	c.HasToilet = f.HasToilet
	c.HasWifi = f.HasWifi
	c.CanTakeCalls = f.CanTakeCalls
	c.Seats = f.Seats
	if f.CoffeePrice == "" {
		c.CoffeePrice = ""
		return
	}
	pence, err := ParsePrice(f.CoffeePrice)
	if err != nil {
		// Validation rejects unparseable prices before Apply runs;
		// keep the raw text rather than guessing a number.
		c.CoffeePrice = f.CoffeePrice
		return
	}
	c.CoffeePrice = FormatPrice(pence)
}

// CafeFormFromCafe prefills a form from a stored café, the inverse of
// Apply: the stored "£n.nn" price comes back as the bare decimal the
// user originally typed.
func CafeFormFromCafe(c *model.Cafe) *CafeForm {
	return &CafeForm{
		Name:         c.Name,
		MapURL:       c.MapURL,
		ImgURL:       c.ImgURL,
		Location:     c.Location,
		HasSockets:   c.HasSockets,
		HasToilet:    c.HasToilet,
		HasWifi:      c.HasWifi,
		CanTakeCalls: c.CanTakeCalls,
		Seats:        c.Seats,
		CoffeePrice:  strings.TrimSpace(StripCurrency(c.CoffeePrice)),
	}
}
