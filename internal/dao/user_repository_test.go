package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_ChallengeLifecycle(t *testing.T) {
	d := newTestDao(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	issued := ts("2026-01-01T10:00:00Z")
	u, err := repo.CreateWithChallenge(ctx, "a@example.com", "$argon2i$hash", issued)
	require.NoError(t, err)
	assert.NotZero(t, u.UID)
	assert.True(t, u.HasChallenge())
	assert.Equal(t, 0, u.CodeAttempts)

	// 失败两次
	require.NoError(t, repo.IncrementAttempts(ctx, u.UID))
	require.NoError(t, repo.IncrementAttempts(ctx, u.UID))
	got, err := repo.GetByUID(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CodeAttempts)

	// 重新签发后次数清零
	reissued := issued.Add(3 * time.Minute)
	require.NoError(t, repo.OverwriteChallenge(ctx, u.UID, "$argon2i$hash2", reissued))
	got, err = repo.GetByUID(ctx, u.UID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CodeAttempts)
	assert.Equal(t, "$argon2i$hash2", got.CodeHash)
	require.NotNil(t, got.CodeCreatedAt)
	assert.True(t, got.CodeCreatedAt.Equal(reissued))

	// 登录成功后挑战整体清空
	require.NoError(t, repo.ClearChallenge(ctx, u.UID))
	got, err = repo.GetByUID(ctx, u.UID)
	require.NoError(t, err)
	assert.False(t, got.HasChallenge())
	assert.Empty(t, got.CodeHash)
	assert.Nil(t, got.CodeCreatedAt)
}

func TestUserRepository_ListExpiredChallenges(t *testing.T) {
	d := newTestDao(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	oldIssued := ts("2026-01-01T10:00:00Z")
	freshIssued := ts("2026-01-01T11:00:00Z")

	stale, err := repo.CreateWithChallenge(ctx, "stale@example.com", "h1", oldIssued)
	require.NoError(t, err)
	fresh, err := repo.CreateWithChallenge(ctx, "fresh@example.com", "h2", freshIssued)
	require.NoError(t, err)

	uids, err := repo.ListExpiredChallenges(ctx, ts("2026-01-01T10:30:00Z"))
	require.NoError(t, err)
	assert.Contains(t, uids, stale.UID)
	assert.NotContains(t, uids, fresh.UID)
}
