package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyTracker(t *testing.T) {
	tracker := NewKeyTracker[string]()

	assert.True(t, tracker.Add("a"))
	assert.True(t, tracker.Add("b"))
	assert.False(t, tracker.Add("a"))
	assert.Equal(t, 2, tracker.Count())
}

func TestKeyTracker_StructKeys(t *testing.T) {
	type key struct {
		id   int64
		date string
	}
	tracker := NewKeyTracker[key]()

	assert.True(t, tracker.Add(key{1, "2025-01-01"}))
	assert.True(t, tracker.Add(key{1, "2025-01-02"}))
	assert.False(t, tracker.Add(key{1, "2025-01-01"}))
}
