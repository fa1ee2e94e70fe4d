package domain

import (
	"context"

	"github.com/quickpost/post-sync-service/pkg/timex"
)

// PostRepository 帖子仓储接口
type PostRepository interface {
	// GetByID 根据ID获取帖子
	GetByID(ctx context.Context, id string, uid int64) (*Post, error)

	// Upsert 条件写入：不存在则插入，存在且更旧才覆盖
	// 陈旧写入静默丢弃，不返回错误
	Upsert(ctx context.Context, post *Post) error

	// UpsertMany 批量条件写入，单条语句完成，各行独立判定
	UpsertMany(ctx context.Context, posts []*Post) error

	// Update 更新帖子内容，仅当存储行更旧时生效
	// 返回实际生效的行数
	Update(ctx context.Context, post *Post) (int64, error)

	// List 按更新时间倒序获取帖子列表，最多 limit 条
	// after 为增量同步水位线（含相等），nil 表示不过滤
	List(ctx context.Context, uid int64, after *timex.Time, limit int) ([]*Post, error)

	// Delete 删除指定帖子，返回删除的行数
	// 帖子不存在或不属于该用户时返回 0
	Delete(ctx context.Context, id string, uid int64) (int64, error)

	// DeleteAll 删除用户的全部帖子
	DeleteAll(ctx context.Context, uid int64) error
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// CreateWithChallenge 创建用户并附带首个登录挑战
	CreateWithChallenge(ctx context.Context, email, codeHash string, createdAt timex.Time) (*User, error)

	// OverwriteChallenge 覆盖用户当前的登录挑战并清零验证次数
	OverwriteChallenge(ctx context.Context, uid int64, codeHash string, createdAt timex.Time) error

	// IncrementAttempts 失败验证次数加一
	IncrementAttempts(ctx context.Context, uid int64) error

	// ClearChallenge 清空登录挑战的全部字段
	ClearChallenge(ctx context.Context, uid int64) error

	// ListExpiredChallenges 获取挑战已过期但尚未清理的用户UID
	ListExpiredChallenges(ctx context.Context, before timex.Time) ([]int64, error)
}

// Notifier 验证码投递接口
type Notifier interface {
	// SendLoginCode 把一次性验证码发送到目标邮箱
	SendLoginCode(ctx context.Context, email, loginCode string) error
}
