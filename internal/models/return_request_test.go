package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturnStatusTransitions(t *testing.T) {
	assert.True(t, ReturnRequested.CanTransitionTo(ReturnApproved))
	assert.True(t, ReturnRequested.CanTransitionTo(ReturnRejected))
	assert.True(t, ReturnApproved.CanTransitionTo(ReturnReceived))
	assert.True(t, ReturnReceived.CanTransitionTo(ReturnRefunded))

	// Cancel is available from every non-terminal state.
	assert.True(t, ReturnRequested.CanTransitionTo(ReturnCancelled))
	assert.True(t, ReturnApproved.CanTransitionTo(ReturnCancelled))
	assert.True(t, ReturnReceived.CanTransitionTo(ReturnCancelled))

	assert.False(t, ReturnRequested.CanTransitionTo(ReturnReceived))
	assert.False(t, ReturnRequested.CanTransitionTo(ReturnRefunded))
	assert.False(t, ReturnApproved.CanTransitionTo(ReturnRefunded))
	assert.False(t, ReturnRejected.CanTransitionTo(ReturnApproved))
	assert.False(t, ReturnRefunded.CanTransitionTo(ReturnCancelled))
	assert.False(t, ReturnCancelled.CanTransitionTo(ReturnRequested))
}

func TestReturnStatusTerminal(t *testing.T) {
	assert.True(t, ReturnRejected.IsTerminal())
	assert.True(t, ReturnRefunded.IsTerminal())
	assert.True(t, ReturnCancelled.IsTerminal())
	assert.False(t, ReturnRequested.IsTerminal())
	assert.False(t, ReturnApproved.IsTerminal())
	assert.False(t, ReturnReceived.IsTerminal())
}

func TestReturnReasonIsValid(t *testing.T) {
	assert.True(t, ReasonDefective.IsValid())
	assert.True(t, ReasonNoLongerNeeded.IsValid())
	assert.True(t, ReasonOther.IsValid())
	assert.False(t, ReturnReason("changed-my-mind").IsValid())
	assert.False(t, ReturnReason("").IsValid())
}
