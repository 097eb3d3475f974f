package exceptions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinels(t *testing.T) {
	t.Run("Unresolvable Wrapped Into Integrity Keeps Both Sentinels", func(t *testing.T) {
		unresolvable := ErrUnresolvableReference(nil, "profile:doctor/D404")
		integrity := ErrDataIntegrity(unresolvable, "profile:doctor/D404")

		assert.True(t, errors.Is(integrity, ErrIntegrity))
		assert.True(t, errors.Is(integrity, ErrUnresolvable))
		assert.Equal(t, 500, StatusCodeOf(integrity))
	})

	t.Run("Profile Conflict", func(t *testing.T) {
		err := ErrProfileAlreadyExists(nil, "patient", "U9")
		assert.True(t, errors.Is(err, ErrConflict))
		assert.Equal(t, 409, StatusCodeOf(err))
	})

	t.Run("Not Party Is Forbidden", func(t *testing.T) {
		err := ErrNotParty(nil, "U9", "delete", "invoice")
		assert.True(t, errors.Is(err, ErrForbidden))
		assert.Equal(t, 403, StatusCodeOf(err))
		assert.Contains(t, err.DevMessage, "U9")
	})

	t.Run("Sentinel Is Not Duplicated", func(t *testing.T) {
		inner := ErrProfileAlreadyExists(nil, "patient", "U9")
		outer := ErrProfileAlreadyExists(inner, "patient", "U9")
		assert.Same(t, error(inner), errors.Unwrap(outer))
	})
}

func TestBuildNewCustomError(t *testing.T) {
	inner := ErrTooManyItems(201, 200)
	outer := BuildNewCustomError(inner, 500, "client", "dev")

	require.Len(t, outer.Locations, 2)
	assert.Equal(t, inner.Locations[0], outer.Locations[1])
	assert.Contains(t, outer.Error(), "dev: ")
	assert.Same(t, error(inner), errors.Unwrap(outer))
}

func TestStatusCodeOf(t *testing.T) {
	assert.Equal(t, 500, StatusCodeOf(errors.New("boom")))
	assert.Equal(t, 400, StatusCodeOf(ErrTooManyItems(201, 200)))
	assert.Equal(t, 503, StatusCodeOf(WrapWithoutError(503, "down", "redis down")))
}
