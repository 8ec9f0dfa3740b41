package validator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

var (
	global     *validator.Validate
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

const (
	ErrNameTooShort    = "Name is required and must be at least 2 characters"
	ErrEventNameShort  = "Event name is required and must be at least 3 characters"
	ErrDetailsTooShort = "Details must be at least 10 characters"
	ErrInvalidEmail    = "Valid email is required"
	ErrUnknownField    = "Invalid field value"
)

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("email_basic", validateEmailBasic)
	_ = v.RegisterValidation("trimmed_min", validateTrimmedMin)
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

// IsValidEmail reports whether s looks like an email address. The pattern
// is deliberately conservative: local part, "@", domain with a dot and a
// TLD of two or more letters. No RFC 5321 coverage, no DNS lookup.
func IsValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// Sanitize trims surrounding whitespace and strips the literal '<' and '>'
// characters so submitted text cannot smuggle markup into stored rows.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	return strings.ReplaceAll(s, ">", "")
}

func validateEmailBasic(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

// trimmed_min=N: minimum length after trimming surrounding whitespace.
func validateTrimmedMin(fl validator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(fl.Field().String())) >= min
}

// ContactForm holds the fields checked on contact submission. Rules are
// evaluated per field, not short-circuited, so every unmet rule surfaces
// its own message.
type ContactForm struct {
	EventName string `validate:"trimmed_min=3"`
	Email     string `validate:"email_basic"`
	Name      string `validate:"trimmed_min=2"`
	Details   string `validate:"trimmed_min=10"`
}

// ValidateContactForm returns one human-readable message per violated
// rule. An empty slice means the form is valid.
func ValidateContactForm(f ContactForm) []string {
	err := Validator().Struct(f)
	if err == nil {
		return nil
	}

	vErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{ErrUnknownField}
	}

	msgs := make([]string, 0, len(vErrors))
	for _, ve := range vErrors {
		switch ve.Field() {
		case "EventName":
			msgs = append(msgs, ErrEventNameShort)
		case "Email":
			msgs = append(msgs, ErrInvalidEmail)
		case "Name":
			msgs = append(msgs, ErrNameTooShort)
		case "Details":
			msgs = append(msgs, ErrDetailsTooShort)
		default:
			msgs = append(msgs, ErrUnknownField)
		}
	}
	return msgs
}
