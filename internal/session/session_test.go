package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignsUniqueIDs(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a.ID(), b.ID())

	_, err := uuid.Parse(a.ID())
	require.NoError(t, err)
}

func TestUptimeGrows(t *testing.T) {
	s := New()
	assert.GreaterOrEqual(t, s.Uptime().Nanoseconds(), int64(0))
}
