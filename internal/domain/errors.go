package domain

import "errors"

// Error kinds. Every error returned by the consultation and directory
// services that is not an infrastructure failure matches one of these with
// errors.Is.
var (
	ErrUnauthorized = errors.New("Unauthorized")
	ErrForbidden    = errors.New("Forbidden")
	ErrNotFound     = errors.New("Not found")
	ErrInvalidInput = errors.New("Invalid input")
	ErrConflict     = errors.New("Conflict")
)

// Error carries a client-facing message alongside its kind.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

func Forbidden(message string) error {
	return &Error{kind: ErrForbidden, message: message}
}

func NotFound(message string) error {
	return &Error{kind: ErrNotFound, message: message}
}

func InvalidInput(message string) error {
	return &Error{kind: ErrInvalidInput, message: message}
}

func Conflict(message string) error {
	return &Error{kind: ErrConflict, message: message}
}

var (
	ErrConsultationNotFound     = NotFound("Consultation not found")
	ErrTutorNotFound            = NotFound("Tutor not found")
	ErrStudentNotFound          = NotFound("Student not found")
	ErrCannotCreateConsultation = Forbidden("Cannot create consultations for this user")
	ErrParticipantMissing       = InvalidInput("Tutor or student does not exist")
	ErrEmailTaken               = Conflict("Email already registered")
)
