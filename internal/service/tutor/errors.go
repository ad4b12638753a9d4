package tutor

import "errors"

// Service-level errors. These are caller errors, surfaced explicitly
// rather than panicking: session IDs legitimately expire when sessions
// end.
var (
	// ErrSessionNotFound is returned for unknown or already-ended
	// session IDs.
	ErrSessionNotFound = errors.New("no such session")

	// ErrUserIDEmpty is returned when a session is started without a
	// user ID.
	ErrUserIDEmpty = errors.New("user ID cannot be empty")

	// ErrSubjectEmpty is returned when a session is started without a
	// subject.
	ErrSubjectEmpty = errors.New("subject cannot be empty")

	// ErrMessageEmpty is returned when a message has no text.
	ErrMessageEmpty = errors.New("message text cannot be empty")

	// ErrInvalidAnswer is returned when a quiz answer is not a single
	// option letter.
	ErrInvalidAnswer = errors.New("answer must be a single option letter")
)
