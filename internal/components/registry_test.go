package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndResolve(t *testing.T) {
	r := New()
	r.Register("conn", func() any { return "built" })

	got, ok := r.Resolve("conn")
	require.True(t, ok)
	assert.Equal(t, "built", got)
}

func TestResolveUnknown(t *testing.T) {
	_, ok := New().Resolve("ghost")
	assert.False(t, ok)
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	r := New()
	r.Register("conn", func() any { return nil })
	assert.Panics(t, func() {
		r.Register("conn", func() any { return nil })
	})
}

func TestNamesKeepRegistrationOrder(t *testing.T) {
	r := New()
	r.Register("b", func() any { return nil })
	r.Register("a", func() any { return nil })
	assert.Equal(t, []string{"b", "a"}, r.Names())
}
