package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpStateLifecycle(t *testing.T) {
	var s OpState
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.False(t, s.InFlight())
	assert.Empty(t, s.Err())

	assert.True(t, s.Begin())
	assert.True(t, s.InFlight())

	s.Succeed()
	assert.Equal(t, PhaseSucceeded, s.Phase())
	assert.Empty(t, s.Err())
}

func TestOpStateBeginGuardsReentry(t *testing.T) {
	var s OpState
	assert.True(t, s.Begin())
	assert.False(t, s.Begin(), "second Begin while in flight must be refused")

	s.Succeed()
	assert.True(t, s.Begin(), "Begin after completion must be allowed")
}

func TestOpStateErrorOnlyInFailedPhase(t *testing.T) {
	var s OpState
	s.Begin()
	s.Fail("timeout")
	assert.Equal(t, PhaseFailed, s.Phase())
	assert.Equal(t, "timeout", s.Err())

	// Retrying clears the message: loading with a stale error cannot exist.
	s.Begin()
	assert.Empty(t, s.Err())
	assert.True(t, s.InFlight())
}
