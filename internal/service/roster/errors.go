package roster

import (
	"errors"
	"fmt"

	"github.com/shaxn3/WSTFinalProject/internal/domain"
)

// Closed set of roster operation failures. Handlers map these to HTTP
// status codes with errors.Is rather than matching on message text.
var (
	// ErrMemberNotFound is returned when the target ID matches no record.
	ErrMemberNotFound = errors.New("member not found")

	// ErrDuplicateID is returned when adding a member whose ID is already
	// taken.
	ErrDuplicateID = errors.New("member ID already exists")

	// ErrDuplicateEmail is returned when a member's email would collide
	// with another record's under case-insensitive comparison.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidImage is returned when a picture payload is not an
	// accepted data URI, is not valid base64, or exceeds the size limit.
	// The picture check runs before field validation and is reported as
	// its own class, not as a field error.
	ErrInvalidImage = errors.New("invalid image format")
)

// ValidationError reports every field rule violated by an operation's
// candidate record(s). Exactly one of Fields or Records is populated:
// Fields for the single-record operations (add, update), Records for the
// bulk replace, keyed by candidate position.
type ValidationError struct {
	Fields  []domain.FieldError
	Records map[string][]domain.FieldError
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Records != nil {
		return fmt.Sprintf("validation failed for %d record(s)", len(e.Records))
	}
	return fmt.Sprintf("validation failed: %d field error(s)", len(e.Fields))
}

// Details returns the structure serialized into the response envelope's
// "details" field: a flat list of messages for single-record operations, or
// a map keyed by "member_<index>" for the bulk replace.
func (e *ValidationError) Details() interface{} {
	if e.Records != nil {
		details := make(map[string][]string, len(e.Records))
		for key, errs := range e.Records {
			details[key] = fieldMessages(errs)
		}
		return details
	}
	return fieldMessages(e.Fields)
}

func fieldMessages(errs []domain.FieldError) []string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, fe.Message)
	}
	return messages
}
