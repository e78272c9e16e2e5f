package user

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rules mirror the ones the API enforces server-side; running
// them locally keeps forms responsive without a round trip.

const passwordSymbols = "!@#$%^&*"

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	// Passwords need a length bound, a digit, and a symbol from a fixed
	// set; validator has no composite tag for that, so register one.
	_ = v.RegisterValidation("accountpassword", func(fl validator.FieldLevel) bool {
		return passwordShape(fl.Field().String())
	})
	return v
}

func passwordShape(s string) bool {
	if len(s) < 8 || len(s) > 20 {
		return false
	}
	var digit, symbol bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		default:
			return false
		}
	}
	return digit && symbol
}

// UsernameValid reports whether the username is present and within the
// 4-32 character bounds.
func (u User) UsernameValid() bool {
	return validate.Var(u.Username(), "required,min=4,max=32") == nil
}

// EmailValid reports whether the email has a standard address shape.
func (u User) EmailValid() bool {
	return validate.Var(u.Email(), "required,email") == nil
}

// PhoneValid reports whether the phone number is exactly ten digits.
func (u User) PhoneValid() bool {
	return validate.Var(u.Phone(), "required,len=10,number") == nil
}

// PasswordValid reports whether the password meets the shape rules.
func (u User) PasswordValid() bool {
	return validate.Var(u.Password(), "required,accountpassword") == nil
}

// NewPasswordValid reports whether the optional replacement password is
// either absent or well-formed.
func (u User) NewPasswordValid() bool {
	return u.NewPassword() == "" || passwordShape(u.NewPassword())
}

// ReCaptchaResponseValid reports whether a challenge response is present.
func (u User) ReCaptchaResponseValid() bool {
	return u.ReCaptchaResponse() != ""
}

// NewUserValid gates registration: all identity fields, a password, and a
// reCAPTCHA response.
func (u User) NewUserValid() bool {
	return u.UsernameValid() &&
		u.EmailValid() &&
		u.PhoneValid() &&
		u.PasswordValid() &&
		u.ReCaptchaResponseValid()
}

// EditUserValid gates profile updates: identity fields plus an optional
// well-formed replacement password. No reCAPTCHA outside registration.
func (u User) EditUserValid() bool {
	return u.UsernameValid() &&
		u.EmailValid() &&
		u.PhoneValid() &&
		u.NewPasswordValid()
}

// EmailStringValid checks a bare email address, used by forms that collect
// one outside of a User record.
func EmailStringValid(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// PasswordStringValid checks a bare password against the shape rules.
func PasswordStringValid(password string) bool {
	return passwordShape(password)
}

// ResetCodeValid reports whether a password-reset code is a six digit
// number, the format the server mails out.
func ResetCodeValid(code string) bool {
	return validate.Var(code, "required,len=6,number") == nil
}
