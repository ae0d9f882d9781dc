package outbox

import "strings"

// ValidateDraft validates fields required to store a draft.
func ValidateDraft(msg *Message) error {
	if msg == nil {
		return ErrInvalidInput
	}
	if strings.TrimSpace(msg.ID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(msg.ContactID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(msg.TemplateID) == "" {
		return ErrInvalidInput
	}
	return nil
}

// ValidateTransition validates a requested state move. Transitions are
// monotonic: drafted < approved < sent < {replied, met}, and failed is
// reachable only from drafted.
func ValidateTransition(from, to MessageState) error {
	valid := false
	switch from {
	case StateDrafted:
		switch to {
		case StateApproved, StateSent, StateFailed:
			valid = true
		}
	case StateApproved:
		if to == StateSent {
			valid = true
		}
	case StateSent:
		if to == StateReplied || to == StateMet {
			valid = true
		}
	}
	if !valid {
		return ErrInvalidTransition
	}
	return nil
}
