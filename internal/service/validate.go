package service

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

const minPasswordLength = 6

var validate = validator.New(validator.WithRequiredStructEnabled())

// normalizeEmail folds compatibility forms and case so that visually
// equivalent addresses compare equal.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(email)))
}

func isEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func passwordTooShort(password string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(password)) < minPasswordLength
}
