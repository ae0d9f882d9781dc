package outbox

// CanSend is the approval gate: sending requires the message to be in
// approved, unless the caller sets the operator-level override. Pure
// decision, no I/O. Override does not relax the state machine itself;
// MarkSent still rejects invalid source states.
func CanSend(msg *Message, override bool) bool {
	if override {
		return true
	}
	return msg != nil && msg.State == StateApproved
}
