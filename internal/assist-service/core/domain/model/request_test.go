package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusPending))
	assert.False(t, IsTerminal(StatusAccepted))

	assert.True(t, IsTerminal(StatusDeclined))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
}

func TestTransitionSources(t *testing.T) {
	assert.Equal(t, []string{StatusPending}, AcceptableFrom)
	assert.Equal(t, []string{StatusPending}, DeclinableFrom)
	assert.Contains(t, CompletableFrom, StatusPending)
	assert.Contains(t, CompletableFrom, StatusAccepted)
	assert.Contains(t, CancellableFrom, StatusPending)
	assert.Contains(t, CancellableFrom, StatusAccepted)

	for _, from := range [][]string{AcceptableFrom, DeclinableFrom, CompletableFrom, CancellableFrom} {
		for _, s := range from {
			assert.False(t, IsTerminal(s), "no transition starts from a terminal status")
		}
	}
}
