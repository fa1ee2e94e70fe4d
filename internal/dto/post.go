// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/quickpost/post-sync-service/pkg/timex"

// PostUpsertRequest Request parameters for creating or replaying a post
// 创建（或重放）帖子的请求参数
// ID 和 UpdatedAt 均可由客户端提供，缺省时服务端生成
type PostUpsertRequest struct {
	ID        string `json:"id" form:"id" binding:"omitempty,len=21,alphanum"` // Client generated nanoid, server assigns when omitted // 客户端生成的 nanoid，缺省时服务端生成
	Content   string `json:"content" form:"content"`                           // Post content // 帖子内容
	Variant   string `json:"variant" form:"variant"`                           // Display variant // 展示样式
	UpdatedAt string `json:"updatedAt" form:"updatedAt"`                       // RFC3339 timestamp // RFC3339 时间戳
}

// PostUpsertManyRequest Batch upsert request
// 批量条件写入请求
type PostUpsertManyRequest struct {
	Posts []PostUpsertRequest `json:"posts" binding:"required,dive"`
}

// PostUpdateRequest Request parameters for updating a post
// 更新帖子的请求参数
type PostUpdateRequest struct {
	Content   string `json:"content" form:"content"`
	Variant   string `json:"variant" form:"variant"`
	UpdatedAt string `json:"updatedAt" form:"updatedAt"`
}

// PostListRequest Incremental list request
// 增量式列表请求参数
type PostListRequest struct {
	After string `json:"after" form:"after"`                    // Inclusive updatedAt watermark, RFC3339 // 增量同步水位线（含相等），RFC3339
	Limit int    `json:"limit" form:"limit" binding:"max=1000"` // Page size, default 10 // 每页数量，默认 10
}

// ---------------- DTO / Response ----------------

// PostDTO Post data transfer object
// PostDTO 帖子数据传输对象
type PostDTO struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Variant   string     `json:"variant"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}
