package leaverequest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAllowedStatusTransitions(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusDraft, StatusPendingDeptHead, true},
		{StatusDraft, StatusApproved, false},
		{StatusDraft, StatusRejected, false},
		{StatusPendingDeptHead, StatusApproved, true},
		{StatusPendingDeptHead, StatusRejected, true},
		{StatusPendingDeptHead, StatusDraft, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPendingDeptHead, false},
		{StatusRejected, StatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, isAllowedStatusTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestSignatureSigned(t *testing.T) {
	var s Signature
	assert.False(t, s.Signed())

	s = SignedNow(uuid.New())
	assert.True(t, s.Signed())
	assert.NotNil(t, s.Ref)
	assert.NotNil(t, s.SignedAt)
}

func TestIsFinal(t *testing.T) {
	assert.False(t, (&LeaveRequest{Status: StatusDraft}).IsFinal())
	assert.False(t, (&LeaveRequest{Status: StatusPendingDeptHead}).IsFinal())
	assert.True(t, (&LeaveRequest{Status: StatusApproved}).IsFinal())
	assert.True(t, (&LeaveRequest{Status: StatusRejected}).IsFinal())
}
