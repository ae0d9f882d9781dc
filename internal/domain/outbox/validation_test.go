package outbox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDraft(t *testing.T) {
	valid := &Message{ID: "m1", ContactID: "c1", TemplateID: "short"}
	require.NoError(t, ValidateDraft(valid))

	require.ErrorIs(t, ValidateDraft(nil), ErrInvalidInput)
	require.ErrorIs(t, ValidateDraft(&Message{ContactID: "c1", TemplateID: "short"}), ErrInvalidInput)
	require.ErrorIs(t, ValidateDraft(&Message{ID: "m1", TemplateID: "short"}), ErrInvalidInput)
	require.ErrorIs(t, ValidateDraft(&Message{ID: "m1", ContactID: "c1"}), ErrInvalidInput)
	require.ErrorIs(t, ValidateDraft(&Message{ID: "  ", ContactID: "c1", TemplateID: "short"}), ErrInvalidInput)
}

func TestValidateTransition(t *testing.T) {
	allowed := []struct{ from, to MessageState }{
		{StateDrafted, StateApproved},
		{StateDrafted, StateSent},
		{StateDrafted, StateFailed},
		{StateApproved, StateSent},
		{StateSent, StateReplied},
		{StateSent, StateMet},
	}
	for _, tc := range allowed {
		require.NoError(t, ValidateTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	rejected := []struct{ from, to MessageState }{
		{StateApproved, StateDrafted},
		{StateApproved, StateFailed},
		{StateSent, StateDrafted},
		{StateSent, StateFailed},
		{StateReplied, StateMet},
		{StateMet, StateReplied},
		{StateFailed, StateApproved},
		{StateReplied, StateSent},
	}
	for _, tc := range rejected {
		require.ErrorIs(t, ValidateTransition(tc.from, tc.to), ErrInvalidTransition,
			"%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestNewMessageIDStable(t *testing.T) {
	a := NewMessageID("acme", "c1", "short")
	b := NewMessageID("acme", "c1", "short")
	require.Equal(t, a, b, "same identity must map to the same id")
	require.Len(t, a, 32)

	require.NotEqual(t, a, NewMessageID("other", "c1", "short"))
	require.NotEqual(t, a, NewMessageID("acme", "c2", "short"))
	require.NotEqual(t, a, NewMessageID("acme", "c1", "medium"))
}

func TestCanSend(t *testing.T) {
	require.True(t, CanSend(&Message{State: StateApproved}, false))
	require.False(t, CanSend(&Message{State: StateDrafted}, false))
	require.False(t, CanSend(nil, false))

	require.True(t, CanSend(&Message{State: StateDrafted}, true))
	require.True(t, CanSend(nil, true))
}

func TestCountsSentTotal(t *testing.T) {
	c := Counts{Sent: 1, Replied: 2, Met: 1, Drafted: 5}
	require.Equal(t, 4, c.SentTotal())
}
