package form

import "net/url"

// SignupForm is the registration form. Passwords are taken verbatim,
// spaces included; only the identity fields are trimmed.
type SignupForm struct {
	Email    string `form:"email" validate:"required,email"`
	Name     string `form:"name" validate:"required"`
	Password string `form:"password" validate:"required,min=8"`
}

func DecodeSignupForm(v url.Values) (*SignupForm, Errors) {
	f := &SignupForm{
		Email:    text(v, "email"),
		Name:     text(v, "name"),
		Password: v.Get("password"),
	}
	return f, check(f)
}

// LoginForm mirrors the signup credentials, without the display name.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
}

func DecodeLoginForm(v url.Values) (*LoginForm, Errors) {
	f := &LoginForm{
		Email:    text(v, "email"),
		Password: v.Get("password"),
	}
	return f, check(f)
}

// ProfileForm lets a signed-in user change their display name. Email
// is fixed at signup, so the name is the whole form.
type ProfileForm struct {
	Name string `form:"name" validate:"required"`
}

func DecodeProfileForm(v url.Values) (*ProfileForm, Errors) {
	f := &ProfileForm{Name: text(v, "name")}
	return f, check(f)
}
