package logger

// 统一的日志字段命名常量
// 保证整个项目中日志字段命名一致，便于日志查询和分析
const (
	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldEmail 邮箱字段
	FieldEmail = "email"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldPostID 帖子 ID 字段
	FieldPostID = "postId"

	// FieldCount 数量字段
	FieldCount = "count"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldIP 请求来源 IP 字段
	FieldIP = "ip"
)
