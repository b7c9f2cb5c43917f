// Package validation holds the input rules shared by the public signup and
// feature-request endpoints.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EmailTag is the gin binding tag backed by IsValidEmail.
const EmailTag = "waitlistemail"

const (
	FeatureRequestMinLength = 10
	FeatureRequestMaxLength = 1000
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var emailCaser = cases.Lower(language.Und)

// IsValidEmail applies the deliberately loose landing-page rule: something@something.tld
// with no whitespace and exactly one separating "@" on each side.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail lower-cases an address so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return emailCaser.String(email)
}

// LengthError reports a trimmed text that falls outside its allowed bounds.
type LengthError struct {
	Field  string
	Length int
	Min    int
	Max    int
}

func (e *LengthError) Error() string {
	if e.Length < e.Min {
		return fmt.Sprintf("%s must be at least %d characters long", e.Field, e.Min)
	}
	return fmt.Sprintf("%s must not exceed %d characters", e.Field, e.Max)
}

// TrimmedText trims surrounding whitespace and checks the rune count is within [min, max].
// The trimmed value is returned even when the check fails.
func TrimmedText(field, value string, min, max int) (string, error) {
	trimmed := strings.TrimSpace(value)
	n := utf8.RuneCountInString(trimmed)

	if n < min || n > max {
		return trimmed, &LengthError{Field: field, Length: n, Min: min, Max: max}
	}

	return trimmed, nil
}

// registrar runs a registration once and keeps its outcome, so every later
// call reports the same error.
type registrar struct {
	once sync.Once
	err  error
}

func (r *registrar) run(engine func() any) error {
	r.once.Do(func() {
		r.err = registerTags(engine())
	})
	return r.err
}

var bindings registrar

// RegisterBindings installs the custom tags on gin's default validator engine.
// Safe to call more than once; a failed registration keeps failing.
func RegisterBindings() error {
	return bindings.run(binding.Validator.Engine)
}

func registerTags(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("validation: unexpected binding engine %T", engine)
	}

	return v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
}
