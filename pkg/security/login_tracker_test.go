package security_test

import (
	"context"
	"testing"
	"time"

	"job-board-backend/internal/testutil"
	"job-board-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginTrackerWithoutRedisFailsOpen(t *testing.T) {
	lt := security.NewLoginTracker(nil, security.DefaultLoginTrackerConfig(), nil)
	ctx := context.Background()

	blocked, err := lt.RecordFailure(ctx, "ana@x.com", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)

	blocked, err = lt.IsBlocked(ctx, "ana@x.com", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.NoError(t, lt.Clear(ctx, "ana@x.com", "10.0.0.1"))
}

func TestLoginTrackerBlocksAfterMaxAttempts(t *testing.T) {
	client := testutil.Redis(t)
	ctx := context.Background()

	lt := security.NewLoginTracker(client, security.LoginTrackerConfig{
		MaxAttempts:   3,
		AttemptWindow: time.Minute,
		BlockDuration: time.Minute,
	}, security.NopSecurityLogger())

	for i := 0; i < 2; i++ {
		blocked, err := lt.RecordFailure(ctx, "ana@x.com", "")
		require.NoError(t, err)
		assert.False(t, blocked)
	}

	blocked, err := lt.RecordFailure(ctx, "ana@x.com", "")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = lt.IsBlocked(ctx, "ana@x.com", "")
	require.NoError(t, err)
	assert.True(t, blocked)

	t.Run("Should not affect other emails", func(t *testing.T) {
		blocked, err := lt.IsBlocked(ctx, "ben@x.com", "")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("Should reset the counter on clear", func(t *testing.T) {
		require.NoError(t, lt.Clear(ctx, "cara@x.com", ""))
		_, err := lt.RecordFailure(ctx, "cara@x.com", "")
		require.NoError(t, err)
		require.NoError(t, lt.Clear(ctx, "cara@x.com", ""))

		n, err := client.Exists(ctx, "fail:login:user:cara@x.com").Result()
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestHashValue(t *testing.T) {
	h := security.HashValue("ana@x.com")
	assert.Len(t, h, 16)
	assert.Equal(t, h, security.HashValue("ana@x.com"))
	assert.NotContains(t, h, "ana")
}
