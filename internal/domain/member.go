package domain

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrorKind identifies which validation rule a member field violated.
type FieldErrorKind string

// Closed set of field validation failures.
const (
	NameTooShort   FieldErrorKind = "name_too_short"
	EmailInvalid   FieldErrorKind = "email_invalid"
	CourseTooShort FieldErrorKind = "course_too_short"

	// Cross-record failures reported during a bulk replace, where a
	// duplicate is a property of the candidate collection rather than
	// of a single field value.
	EmailDuplicate FieldErrorKind = "email_duplicate"
	IDDuplicate    FieldErrorKind = "id_duplicate"
)

// FieldError describes a single violated validation rule on a member field.
type FieldError struct {
	Field   string         `json:"field"`
	Kind    FieldErrorKind `json:"kind"`
	Message string         `json:"message"`
}

// Member represents one roster entry. IDs follow the YYYY-NNN format and
// are immutable once assigned; Picture is either empty or a base64 data URI.
type Member struct {
	ID      string `json:"id"`
	Name    string `json:"name"    validate:"required,min=2"`
	Email   string `json:"email"   validate:"required,email"`
	Course  string `json:"course"  validate:"required,min=2"`
	Picture string `json:"picture"`
}

// Shared validator instance; validator.Validate is safe for concurrent use.
var validate = validator.New()

// Validate checks the member's fields against the roster rules and reports
// every violated rule, not just the first. Name and course are measured
// after trimming so whitespace-padded values do not pass the length check.
func (m Member) Validate() []FieldError {
	c := m
	c.Name = strings.TrimSpace(c.Name)
	c.Course = strings.TrimSpace(c.Course)

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-validation errors from validator.Struct only occur for
		// invalid input types, which cannot happen with a Member value.
		return []FieldError{{Field: "member", Message: err.Error()}}
	}

	var fieldErrs []FieldError
	for _, fe := range verrs {
		switch fe.StructField() {
		case "Name":
			fieldErrs = append(fieldErrs, FieldError{
				Field:   "name",
				Kind:    NameTooShort,
				Message: "Name must be at least 2 characters",
			})
		case "Email":
			fieldErrs = append(fieldErrs, FieldError{
				Field:   "email",
				Kind:    EmailInvalid,
				Message: "Valid email is required",
			})
		case "Course":
			fieldErrs = append(fieldErrs, FieldError{
				Field:   "course",
				Kind:    CourseTooShort,
				Message: "Course is required",
			})
		}
	}
	return fieldErrs
}

// MaxPictureBytes is the largest accepted decoded picture size (2 MiB).
const MaxPictureBytes = 2 * 1024 * 1024

// pictureDataURI matches the accepted embedded-image prefix.
var pictureDataURI = regexp.MustCompile(`^data:image/(jpeg|jpg|png|gif);base64,`)

// ValidPicture reports whether the picture value is acceptable: empty means
// no picture; otherwise the value must be a data URI with a supported image
// MIME type whose base64 payload decodes to at most MaxPictureBytes.
func ValidPicture(picture string) bool {
	if picture == "" {
		return true
	}

	loc := pictureDataURI.FindStringIndex(picture)
	if loc == nil {
		return false
	}

	payload := picture[loc[1]:]
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return false
	}

	return len(decoded) <= MaxPictureBytes
}
