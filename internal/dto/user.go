// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// SendCodeRequest Request parameters for issuing a one-time login code
// 请求签发一次性登录验证码的参数
type SendCodeRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"` // User email // 用户邮件
}

// LoginRequest Request parameters for logging in with a one-time code
// 使用一次性验证码登录的请求参数
// 格式校验放在服务层，格式错误和验证码错误返回同一个未授权响应
type LoginRequest struct {
	Email string `json:"email" form:"email" binding:"required"` // User email // 用户邮件
	Code  string `json:"code" form:"code" binding:"required"`   // 8-digit login code // 8 位数字验证码
}

// ---------------- DTO / Response ----------------

// SessionDTO Session data transfer object
// SessionDTO 会话数据传输对象
type SessionDTO struct {
	UID   int64  `json:"uid"`             // User ID // 用户唯一标识
	Email string `json:"email"`           // Email address // 邮件地址
	Token string `json:"token,omitempty"` // Authentication Token // 认证 Token
}
