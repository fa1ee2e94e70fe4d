package domain

import (
	"time"

	"github.com/quickpost/post-sync-service/pkg/timex"
)

// User 用户领域模型
// 登录挑战（一次性验证码）的状态直接挂在用户上：
// CodeHash / CodeAttempts / CodeCreatedAt 三个字段要么同时有效，要么同时清空
type User struct {
	UID   int64
	Email string

	// CodeHash 当前验证码的 argon2 哈希，空字符串表示没有未消费的挑战
	CodeHash string
	// CodeAttempts 当前挑战已失败的验证次数
	CodeAttempts int
	// CodeCreatedAt 当前挑战的签发时间，nil 表示没有未消费的挑战
	CodeCreatedAt *timex.Time

	CreatedAt timex.Time
	UpdatedAt timex.Time
}

// HasChallenge 判断是否存在未消费的登录挑战
func (u *User) HasChallenge() bool {
	return u.CodeHash != "" && u.CodeCreatedAt != nil
}

// ChallengeExpired 判断挑战是否已超过有效期
// 恰好到达有效期边界时仍然可用，只有严格超过才算过期
func (u *User) ChallengeExpired(now timex.Time, ttl time.Duration) bool {
	if !u.HasChallenge() {
		return true
	}
	return now.After(u.CodeCreatedAt.Add(ttl))
}

// ChallengeExhausted 判断挑战的验证次数是否已用完
func (u *User) ChallengeExhausted(maxAttempts int) bool {
	return u.CodeAttempts >= maxAttempts
}

// InCooldown 判断距离上次签发是否还在重发冷却期内
func (u *User) InCooldown(now timex.Time, cooldown time.Duration) bool {
	if u.CodeCreatedAt == nil {
		return false
	}
	return now.Before(u.CodeCreatedAt.Add(cooldown))
}
