package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	id, err := UUIDGenerator{}.NewID()
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestULIDGenerator_MonotonicWithinMillisecond(t *testing.T) {
	gen := NewULIDGenerator()

	prev := ""
	for i := 0; i < 100; i++ {
		id, err := gen.NewID()
		require.NoError(t, err)

		_, err = ulid.ParseStrict(id)
		require.NoError(t, err)

		assert.Greater(t, id, prev)
		prev = id
	}
}
