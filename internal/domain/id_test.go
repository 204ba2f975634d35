package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID_EmptyCollection(t *testing.T) {
	id := NextID(nil, "P")

	assert.Equal(t, "P-001", id)
}

func TestNextID_IncrementsMaxSuffix(t *testing.T) {
	photos := []Photo{
		{ID: "P-001"},
		{ID: "P-005"},
	}

	id := NextID(photos, "P")

	assert.Equal(t, "P-006", id)
}

func TestNextID_GapsDoNotMatter(t *testing.T) {
	photos := []Photo{
		{ID: "P-003"},
		{ID: "P-001"},
		{ID: "P-010"},
	}

	assert.Equal(t, "P-011", NextID(photos, "P"))
}

func TestNextID_IgnoresForeignIDs(t *testing.T) {
	photos := []Photo{
		{ID: "custom-id"},
		{ID: "X-099"},
		{ID: "P-002"},
	}

	assert.Equal(t, "P-003", NextID(photos, "P"))
}

func TestNextID_PadsToThreeDigits(t *testing.T) {
	assert.Equal(t, "P-001", NextID([]Photo{{ID: "nope"}}, "P"))
	assert.Equal(t, "P-100", NextID([]Photo{{ID: "P-099"}}, "P"))
	assert.Equal(t, "P-1000", NextID([]Photo{{ID: "P-999"}}, "P"))
}

func TestNextID_CustomPrefix(t *testing.T) {
	photos := []Photo{{ID: "BOOTH-041"}}

	assert.Equal(t, "BOOTH-042", NextID(photos, "BOOTH"))
}
