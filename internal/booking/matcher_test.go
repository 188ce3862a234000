package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoversRestrictions(t *testing.T) {
	t.Run("no requirements always passes", func(t *testing.T) {
		assert.True(t, coversRestrictions(nil, nil))
		assert.True(t, coversRestrictions([]uint64{1, 2}, nil))
		assert.True(t, coversRestrictions(nil, []uint64{}))
	})

	t.Run("all required endorsements held", func(t *testing.T) {
		assert.True(t, coversRestrictions([]uint64{1, 2, 3}, []uint64{1, 3}))
	})

	t.Run("missing one endorsement fails", func(t *testing.T) {
		assert.False(t, coversRestrictions([]uint64{1, 2}, []uint64{1, 3}))
	})

	t.Run("empty holdings fail any requirement", func(t *testing.T) {
		assert.False(t, coversRestrictions(nil, []uint64{1}))
	})

	t.Run("extra holdings are irrelevant", func(t *testing.T) {
		assert.True(t, coversRestrictions([]uint64{9, 8, 1, 7}, []uint64{1}))
	})
}

func TestOpenAt(t *testing.T) {
	hours := &hoursFixture
	assert.True(t, openAt(hours, Clock{8, 0}), "opening instant is inclusive")
	assert.True(t, openAt(hours, Clock{20, 0}), "closing instant is inclusive")
	assert.True(t, openAt(hours, Clock{12, 30}))
	assert.False(t, openAt(hours, Clock{7, 59}))
	assert.False(t, openAt(hours, Clock{20, 1}))
	assert.False(t, openAt(nil, Clock{12, 0}), "no hours record means closed")
}
