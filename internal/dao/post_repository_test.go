package dao

import (
	"context"
	"testing"
	"time"

	"github.com/quickpost/post-sync-service/internal/domain"
	"github.com/quickpost/post-sync-service/internal/model"
	"github.com/quickpost/post-sync-service/pkg/timex"

	"github.com/glebarez/sqlite"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDao 创建内存数据库的 Dao 实例
func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrateAll(db))
	return New(db)
}

func ts(s string) timex.Time {
	parsed, err := timex.ParseRFC3339(s)
	if err != nil {
		panic(err)
	}
	return parsed
}

func newPost(id string, uid int64, content string, updatedAt timex.Time) *domain.Post {
	return &domain.Post{
		ID:        id,
		UID:       uid,
		Content:   content,
		Variant:   "normal",
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestPostRepository_UpsertInsert(t *testing.T) {
	d := newTestDao(t)
	repo := NewPostRepository(d)
	ctx := context.Background()

	p := newPost("aaaaaaaaaaaaaaaaaaaaa", 1, "hello", ts("2026-01-01T10:00:00Z"))
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.GetByID(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, "normal", got.Variant)
	assert.True(t, got.UpdatedAt.Equal(p.UpdatedAt))
}

func TestPostRepository_UpsertNewerWins(t *testing.T) {
	d := newTestDao(t)
	repo := NewPostRepository(d)
	ctx := context.Background()

	id := "bbbbbbbbbbbbbbbbbbbbb"
	require.NoError(t, repo.Upsert(ctx, newPost(id, 1, "v1", ts("2026-01-01T10:00:00Z"))))
	require.NoError(t, repo.Upsert(ctx, newPost(id, 1, "v2", ts("2026-01-01T11:00:00Z"))))

	got, err := repo.GetByID(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
}

func TestPostRepository_UpsertStaleIsSilentNoop(t *testing.T) {
	d := newTestDao(t)
	repo := NewPostRepository(d)
	ctx := context.Background()

	id := "ccccccccccccccccccccc"
	require.NoError(t, repo.Upsert(ctx, newPost(id, 1, "fresh", ts("2026-01-01T12:00:00Z"))))

	// 陈旧写入不报错也不覆盖
	require.NoError(t, repo.Upsert(ctx, newPost(id, 1, "stale", ts("2026-01-01T09:00:00Z"))))

	got, err := repo.GetByID(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Content)
	assert.True(t, got.UpdatedAt.Equal(ts("2026-01-01T12:00:00Z")))
}

func TestPostRepository_UpsertEqualTimestampKeepsStored(t *testing.T) {
	d := newTestDao(t)
	repo := NewPostRepository(d)
	ctx := context.Background()

	id := "ddddddddddddddddddddd"
	when := ts("2026-01-01T10:00:00Z")
	require.NoError(t, repo.Upsert(ctx, newPost(id, 1, "first", when)))
	require.NoError(t, repo.Upsert(ctx, newPost(id, 1, "second", when)))

	got, err := repo.GetByID(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Content)
}

func TestPostRepository_UpsertIdempotent(t *testing.T) {
	d := newTestDao(t)
	repo := NewPostRepository(d)
	ctx := context.Background()

	p := newPost("eeeeeeeeeeeeeeeeeeeee", 1, "same", ts("2026-01-01T10:00:00Z"))
	require.NoError(t, repo.Upsert(ctx, p))
	require.NoError(t, repo.Upsert(ctx, p))
	require.NoError(t, repo.Upsert(ctx, p))

	got, err := repo.GetByID(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "same", got.Content)
}

func TestPostRepository_UpsertManyRowsIndependent(t *testing.T) {
	d := newTestDao(t)
	repo := NewPostRepository(d)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newPost("id_aaaaaaaaaaaaaaaaaa", 1, "old", ts("2026-01-01T08:00:00Z"))))
	require.NoError(t, repo.Upsert(ctx, newPost("id_bbbbbbbbbbbbbbbbbb", 1, "fresh", ts("2026-01-01T12:00:00Z"))))

	// 批量写入：第一行生效，第二行陈旧被丢弃，第三行新插入
	batch := []*domain.Post{
		newPost("id_aaaaaaaaaaaaaaaaaa", 1, "newer", ts("2026-01-01T10:00:00Z")),
		newPost("id_bbbbbbbbbbbbbbbbbb", 1, "stale", ts("2026-01-01T10:00:00Z")),
		newPost("id_cccccccccccccccccc", 1, "brand new", ts("2026-01-01T10:00:00Z")),
	}
	require.NoError(t, repo.UpsertMany(ctx, batch))

	a, err := repo.GetByID(ctx, "id_aaaaaaaaaaaaaaaaaa", 1)
	require.NoError(t, err)
	assert.Equal(t, "newer", a.Content)

	b, err := repo.GetByID(ctx, "id_bbbbbbbbbbbbbbbbbb", 1)
	require.NoError(t, err)
	assert.Equal(t, "fresh", b.Content)

	c, err := repo.GetByID(ctx, "id_cccccccccccccccccc", 1)
	require.NoError(t, err)
	assert.Equal(t, "brand new", c.Content)
}

func TestPostRepository_UpdateOnlyWhenOlder(t *testing.T) {
	d := newTestDao(t)
	repo := NewPostRepository(d)
	ctx := context.Background()

	id := "fffffffffffffffffffff"
	require.NoError(t, repo.Upsert(ctx, newPost(id, 1, "v1", ts("2026-01-01T10:00:00Z"))))

	rows, err := repo.Update(ctx, newPost(id, 1, "v2", ts("2026-01-01T11:00:00Z")))
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// 陈旧更新不生效
	rows, err = repo.Update(ctx, newPost(id, 1, "v0", ts("2026-01-01T09:00:00Z")))
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	got, err := repo.GetByID(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
}

func TestPostRepository_ListSinceWatermark(t *testing.T) {
	d := newTestDao(t)
	repo := NewPostRepository(d)
	ctx := context.Background()

	// p1 最旧，p5 最新
	for i, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		when := ts("2026-01-01T10:00:00Z").Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Upsert(ctx, newPost(id, 1, "c-"+id, when)))
	}
	// 其他用户的数据不应出现
	require.NoError(t, repo.Upsert(ctx, newPost("p9", 2, "other", ts("2026-01-01T10:00:00Z"))))

	// 无水位线时按更新时间倒序取全量
	page, err := repo.List(ctx, 1, nil, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "p5", page[0].ID)
	assert.Equal(t, "p3", page[2].ID)

	// 水位线命中 p3 的更新时间，含相等，返回 p5 p4 p3
	since := ts("2026-01-01T10:02:00Z")
	page, err = repo.List(ctx, 1, &since, 10)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "p5", page[0].ID)
	assert.Equal(t, "p4", page[1].ID)
	assert.Equal(t, "p3", page[2].ID)

	// 比所有行都新的水位线返回空
	future := ts("2026-01-01T11:00:00Z")
	page, err = repo.List(ctx, 1, &future, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestPostRepository_DeleteAndDeleteAll(t *testing.T) {
	d := newTestDao(t)
	repo := NewPostRepository(d)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, newPost("x1", 1, "a", ts("2026-01-01T10:00:00Z"))))
	require.NoError(t, repo.Upsert(ctx, newPost("x2", 1, "b", ts("2026-01-01T10:00:00Z"))))
	require.NoError(t, repo.Upsert(ctx, newPost("y1", 2, "c", ts("2026-01-01T10:00:00Z"))))

	rows, err := repo.Delete(ctx, "x1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	_, err = repo.GetByID(ctx, "x1", 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 不属于该用户的帖子不会被删除，行数为 0
	rows, err = repo.Delete(ctx, "y1", 1)
	require.NoError(t, err)
	assert.Zero(t, rows)
	_, err = repo.GetByID(ctx, "y1", 2)
	assert.NoError(t, err)

	// 不存在的帖子行数为 0
	rows, err = repo.Delete(ctx, "missing_post_id_00000", 1)
	require.NoError(t, err)
	assert.Zero(t, rows)

	require.NoError(t, repo.DeleteAll(ctx, 1))
	rest, err := repo.List(ctx, 1, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, rest)

	other, err := repo.List(ctx, 2, nil, 10)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

// 合并结果只取决于时间戳最大的版本，与写入顺序无关
func TestProperty_UpsertOrderIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	base := ts("2026-01-01T00:00:00Z")

	properties.Property("latest timestamp wins regardless of arrival order", prop.ForAll(
		func(offsets []int64) bool {
			if len(offsets) == 0 {
				return true
			}

			d := newTestDao(t)
			repo := NewPostRepository(d)
			ctx := context.Background()

			var maxOffset int64 = -1
			for _, off := range offsets {
				p := newPost("prop_post_id", 1, "content", base.Add(time.Duration(off)*time.Second))
				if err := repo.Upsert(ctx, p); err != nil {
					t.Logf("upsert failed: %v", err)
					return false
				}
				if off > maxOffset {
					maxOffset = off
				}
			}

			got, err := repo.GetByID(ctx, "prop_post_id", 1)
			if err != nil {
				t.Logf("get failed: %v", err)
				return false
			}
			return got.UpdatedAt.Equal(base.Add(time.Duration(maxOffset) * time.Second))
		},
		gen.SliceOf(gen.Int64Range(0, 3600)),
	))

	properties.TestingRun(t)
}
