package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalLimiterEvictsIdleUsers(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRecipeCreationRateLimiter(nil, 2, time.Hour)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.allowLocal("alice"))
	assert.True(t, rl.allowLocal("alice"))
	assert.False(t, rl.allowLocal("alice"))
	assert.True(t, rl.allowLocal("bob"))
	assert.Len(t, rl.local, 2)

	// alice stays active, bob goes quiet for a full window
	clock = clock.Add(40 * time.Minute)
	rl.allowLocal("alice")
	clock = clock.Add(30 * time.Minute)
	rl.allowLocal("carol")

	assert.Contains(t, rl.local, "alice")
	assert.Contains(t, rl.local, "carol")
	assert.NotContains(t, rl.local, "bob")
}

func TestLocalLimiterKeepsStateWithinWindow(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := NewRecipeCreationRateLimiter(nil, 1, time.Hour)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.allowLocal("alice"))
	clock = clock.Add(10 * time.Minute)
	assert.False(t, rl.allowLocal("alice"))
	clock = clock.Add(time.Hour)
	assert.True(t, rl.allowLocal("alice"))
}
