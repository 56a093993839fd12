package submission

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MsgMissingFields = "Missing required fields."
	MsgInvalidEmail  = "Invalid email address."
)

// ErrValidation is wrapped by every *ValidationError.
var ErrValidation = errors.New("validation error")

// emailRegex is the one email rule used everywhere: something without
// whitespace or '@', an '@', more of the same, a dot, and at least two
// trailing characters. RE2's \s is ASCII only, so the class also lists the
// vertical tab, every Unicode separator and the BOM to match the browser's \s.
var emailRegex = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]{2,}$`)

// IsEmail reports whether s, once trimmed, looks like local@domain.tld.
func IsEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so clients can map errors back to inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Has reports whether field is among the failing fields.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// validateStruct runs the shared validator over a form struct and folds the
// result into a single *ValidationError. Missing fields take precedence over a
// malformed email when choosing the message.
func validateStruct(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Message: MsgInvalidEmail}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
		if fe.Tag() == "required" {
			verr.Message = MsgMissingFields
		}
	}
	return verr
}
