// Package domain 定义领域模型和接口
package domain

import (
	"github.com/quickpost/post-sync-service/pkg/timex"
)

// Post 帖子领域模型
// UpdatedAt 由客户端提供，是 LWW 冲突合并的唯一依据
type Post struct {
	ID        string
	UID       int64
	Content   string
	Variant   string
	CreatedAt timex.Time
	UpdatedAt timex.Time
}

// NewerThan 判断当前帖子的更新时间是否严格晚于给定时间
// 相同时间戳不算更新，保证合并结果与写入顺序无关
func (p *Post) NewerThan(t timex.Time) bool {
	return p.UpdatedAt.After(t)
}
