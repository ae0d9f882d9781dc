package outbox

import "errors"

var (
	// ErrInvalidTransition indicates a backward or undefined state move.
	// The stored record is left unchanged.
	ErrInvalidTransition = errors.New("invalid message state transition")
	// ErrNotSent indicates an activity was recorded against a message
	// that has not reached sent.
	ErrNotSent = errors.New("message not sent")
	// ErrInvalidInput indicates a malformed message or activity.
	ErrInvalidInput = errors.New("invalid outbox input")
)
