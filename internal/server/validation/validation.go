// Package validation contains pure format checks for registration input.
// Checks run in a fixed order and fail before any storage access happens,
// each with its own sentinel error so the transport layer can report the
// specific reason.
package validation

import (
	"errors"
	"regexp"
	"unicode"
)

var (
	ErrInvalidLogin = errors.New("invalid login format")
	ErrInvalidEmail = errors.New("invalid email format")
	ErrWeakPassword = errors.New("password too weak")
	ErrInvalidPhone = errors.New("invalid phone format")
	ErrInvalidImage = errors.New("invalid image reference")
)

const (
	maxLoginLen    = 30
	maxEmailLen    = 50
	minPasswordLen = 6
	maxPasswordLen = 100
	maxPhoneLen    = 20
	maxImageLen    = 200
)

var (
	loginRe = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)
	phoneRe = regexp.MustCompile(`^\+[0-9]+$`)
)

// Registration checks all fields of a registration request in order:
// login, email, password, phone, image. The first failing check wins.
// Phone and image are optional and only validated when non-empty.
func Registration(login, email, password, phone, image string) error {
	if err := Login(login); err != nil {
		return err
	}
	if err := Email(email); err != nil {
		return err
	}
	if err := Password(password); err != nil {
		return err
	}
	if err := Phone(phone); err != nil {
		return err
	}
	return Image(image)
}

// Login requires a non-empty string of letters, digits and hyphens,
// at most 30 characters.
func Login(login string) error {
	if login == "" || len(login) > maxLoginLen || !loginRe.MatchString(login) {
		return ErrInvalidLogin
	}
	return nil
}

// Email requires a loose RFC-style address of at most 50 characters.
func Email(email string) error {
	if len(email) > maxEmailLen || !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// Password requires 6 to 100 characters with at least one uppercase letter,
// one lowercase letter and one digit. No special characters are required.
func Password(password string) error {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return ErrWeakPassword
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return ErrWeakPassword
	}
	return nil
}

// Phone is optional. When present it must be a '+' followed by digits,
// at most 20 characters total.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(phone) > maxPhoneLen || !phoneRe.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// Image is optional. When present it is only checked for length; the
// content is an opaque URI/identifier.
func Image(image string) error {
	if len(image) > maxImageLen {
		return ErrInvalidImage
	}
	return nil
}
