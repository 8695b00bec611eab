// Package form decodes and validates the application's HTML forms.
// Decoding is a pure url.Values → struct step, validation is
// declarative via struct tags, and the entity mapping is split into
// two one-way functions (form → café, café → form) so none of it
// depends on the HTTP layer.
package form

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a form field name to the message shown next to it. An
// empty map means the submission passed validation.
type Errors map[string]string

func (e Errors) add(field, msg string) {
	if _, dup := e[field]; !dup {
		e[field] = msg
	}
}

// validate is shared across all forms; the instance caches struct
// metadata, so package-wide reuse is the intended pattern.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the form field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs tag validation on a form struct and converts failures
// into per-field messages. Only the first failure per field is kept.
func check(s any) Errors {
	errs := Errors{}
	err := validate.Struct(s)
	if err == nil {
		return errs
	}
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.add("", "Invalid submission.")
		return errs
	}
	for _, fe := range ves {
		errs.add(fe.Field(), messageFor(fe))
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
	case "email":
		return "Invalid email address."
	case "url":
		return "Invalid URL."
	case "oneof":
		return "Not a valid choice."
	}
	return "Invalid value."
}

// text returns a trimmed form value; checkbox follows the presence
// semantics of HTML checkboxes (submitted at all means on).
func text(v url.Values, name string) string {
	return strings.TrimSpace(v.Get(name))
}

func checkbox(v url.Values, name string) bool {
	return v.Get(name) != ""
}
